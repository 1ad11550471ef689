package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"gorm.io/gorm"

	"senya/backend/models"
	"senya/backend/progression"
)

// ContentService is the admin side of the curriculum: units, lessons, signs,
// practice levels and games, and shop packages.
type ContentService struct {
	db     *gorm.DB
	cache  ProgressCache
	logger *log.Logger
}

// NewContentService wires the admin content store. cache may be nil; when
// set, every change to the unit or lesson set drops all cached overall
// progress values.
func NewContentService(db *gorm.DB, cache ProgressCache, logger *log.Logger) *ContentService {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ContentService{db: db, cache: cache, logger: logger}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, progression.ErrInvalidInput)...)
}

// curriculumChanged is called after a committed change that alters which
// units or lessons count toward overall progress.
func (s *ContentService) curriculumChanged(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Printf("progress cache invalidate all: %v", err)
	}
}

func validDifficulty(d models.Difficulty) bool {
	switch d {
	case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
		return true
	}
	return false
}

// Units

func (s *ContentService) CreateUnit(ctx context.Context, unit *models.Unit) error {
	if strings.TrimSpace(unit.Title) == "" {
		return invalid("unit title is required")
	}
	if unit.OrderIndex < 0 {
		return invalid("order_index %d", unit.OrderIndex)
	}
	unit.Lessons = nil
	if err := s.db.WithContext(ctx).Create(unit).Error; err != nil {
		return classify(err)
	}
	s.curriculumChanged(ctx)
	return nil
}

// ListUnits returns units by order_index, archived ones only when asked.
func (s *ContentService) ListUnits(ctx context.Context, includeArchived bool) ([]models.Unit, error) {
	q := s.db.WithContext(ctx).Order("order_index, id")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	var units []models.Unit
	err := q.Find(&units).Error
	return units, classify(err)
}

type UpdateUnitInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	OrderIndex  *int    `json:"order_index"`
	Status      *string `json:"status"`
}

func (s *ContentService) UpdateUnit(ctx context.Context, unitID uint, in UpdateUnitInput) (models.Unit, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return models.Unit{}, invalid("unit title is required")
		}
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.OrderIndex != nil {
		if *in.OrderIndex < 0 {
			return models.Unit{}, invalid("order_index %d", *in.OrderIndex)
		}
		updates["order_index"] = *in.OrderIndex
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}

	db := s.db.WithContext(ctx)
	var unit models.Unit
	if err := db.Take(&unit, unitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return unit, notFound("unit", unitID)
		}
		return unit, classify(err)
	}
	if len(updates) == 0 {
		return unit, nil
	}
	if err := db.Model(&unit).Updates(updates).Error; err != nil {
		return unit, classify(err)
	}
	return unit, classify(db.Take(&unit, unitID).Error)
}

// ArchiveUnit archives a unit together with its lessons and their signs.
func (s *ContentService) ArchiveUnit(ctx context.Context, unitID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Unit{}).
			Where("id = ? AND archived = ?", unitID, false).
			Update("archived", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("unit", unitID)
		}
		lessonIDs := tx.Model(&models.Lesson{}).Select("id").Where("unit_id = ?", unitID)
		if err := tx.Model(&models.Sign{}).Where("lesson_id IN (?)", lessonIDs).
			Update("archived", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.Lesson{}).Where("unit_id = ?", unitID).
			Update("archived", true).Error
	})
	if err != nil {
		return classify(err)
	}
	s.curriculumChanged(ctx)
	return nil
}

// Lessons

func (s *ContentService) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	if strings.TrimSpace(lesson.Title) == "" {
		return invalid("lesson title is required")
	}
	if lesson.RubiesReward < 0 || lesson.OrderIndex < 0 {
		return invalid("rubies_reward %d, order_index %d", lesson.RubiesReward, lesson.OrderIndex)
	}
	db := s.db.WithContext(ctx)
	if err := requireActiveUnit(db, lesson.UnitID); err != nil {
		return err
	}
	lesson.Signs = nil
	if err := db.Create(lesson).Error; err != nil {
		return classify(err)
	}
	s.curriculumChanged(ctx)
	return nil
}

func requireActiveUnit(db *gorm.DB, unitID uint) error {
	var unit models.Unit
	err := db.Where("id = ? AND archived = ?", unitID, false).Take(&unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("unit", unitID)
	}
	return classify(err)
}

// ListLessons returns a unit's lessons by order_index.
func (s *ContentService) ListLessons(ctx context.Context, unitID uint, includeArchived bool) ([]models.Lesson, error) {
	q := s.db.WithContext(ctx).Where("unit_id = ?", unitID).Order("order_index, id")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	var lessons []models.Lesson
	err := q.Find(&lessons).Error
	return lessons, classify(err)
}

type UpdateLessonInput struct {
	UnitID       *uint   `json:"unit_id"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	RubiesReward *int    `json:"rubies_reward"`
	OrderIndex   *int    `json:"order_index"`
	ImageURL     *string `json:"image_url"`
}

func (s *ContentService) UpdateLesson(ctx context.Context, lessonID uint, in UpdateLessonInput) (models.Lesson, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return models.Lesson{}, invalid("lesson title is required")
		}
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.RubiesReward != nil {
		if *in.RubiesReward < 0 {
			return models.Lesson{}, invalid("rubies_reward %d", *in.RubiesReward)
		}
		updates["rubies_reward"] = *in.RubiesReward
	}
	if in.OrderIndex != nil {
		if *in.OrderIndex < 0 {
			return models.Lesson{}, invalid("order_index %d", *in.OrderIndex)
		}
		updates["order_index"] = *in.OrderIndex
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}

	db := s.db.WithContext(ctx)
	var lesson models.Lesson
	if err := db.Take(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lesson, notFound("lesson", lessonID)
		}
		return lesson, classify(err)
	}
	moved := in.UnitID != nil && *in.UnitID != lesson.UnitID
	if moved {
		if err := requireActiveUnit(db, *in.UnitID); err != nil {
			return lesson, err
		}
		updates["unit_id"] = *in.UnitID
	}
	if len(updates) == 0 {
		return lesson, nil
	}
	if err := db.Model(&lesson).Updates(updates).Error; err != nil {
		return lesson, classify(err)
	}
	if moved {
		s.curriculumChanged(ctx)
	}
	return lesson, classify(db.Take(&lesson, lessonID).Error)
}

// ArchiveLesson hides a lesson and its signs from learners. Existing
// progress rows stay.
func (s *ContentService) ArchiveLesson(ctx context.Context, lessonID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Lesson{}).
			Where("id = ? AND archived = ?", lessonID, false).
			Update("archived", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("lesson", lessonID)
		}
		return tx.Model(&models.Sign{}).Where("lesson_id = ?", lessonID).
			Update("archived", true).Error
	})
	if err != nil {
		return classify(err)
	}
	s.curriculumChanged(ctx)
	return nil
}

// Signs

// ListSigns returns a lesson's signs by id.
func (s *ContentService) ListSigns(ctx context.Context, lessonID uint, includeArchived bool) ([]models.Sign, error) {
	q := s.db.WithContext(ctx).Where("lesson_id = ?", lessonID).Order("id")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	var signs []models.Sign
	err := q.Find(&signs).Error
	return signs, classify(err)
}

type UpdateSignInput struct {
	Text            *string            `json:"text"`
	VideoURL        *string            `json:"video_url"`
	DifficultyLevel *models.Difficulty `json:"difficulty"`
}

func (s *ContentService) UpdateSign(ctx context.Context, signID uint, in UpdateSignInput) (models.Sign, error) {
	updates := map[string]interface{}{}
	if in.Text != nil {
		if strings.TrimSpace(*in.Text) == "" {
			return models.Sign{}, invalid("sign text is required")
		}
		updates["text"] = *in.Text
	}
	if in.VideoURL != nil {
		if strings.TrimSpace(*in.VideoURL) == "" {
			return models.Sign{}, invalid("video_url is required")
		}
		updates["video_url"] = *in.VideoURL
	}
	if in.DifficultyLevel != nil {
		if !validDifficulty(*in.DifficultyLevel) {
			return models.Sign{}, invalid("difficulty %q", *in.DifficultyLevel)
		}
		updates["difficulty_level"] = *in.DifficultyLevel
	}

	db := s.db.WithContext(ctx)
	var sign models.Sign
	if err := db.Take(&sign, signID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sign, notFound("sign", signID)
		}
		return sign, classify(err)
	}
	if len(updates) == 0 {
		return sign, nil
	}
	if err := db.Model(&sign).Updates(updates).Error; err != nil {
		return sign, classify(err)
	}
	return sign, classify(db.Take(&sign, signID).Error)
}

func (s *ContentService) ArchiveSign(ctx context.Context, signID uint) error {
	res := s.db.WithContext(ctx).Model(&models.Sign{}).
		Where("id = ? AND archived = ?", signID, false).
		Update("archived", true)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("sign", signID)
	}
	return nil
}

// Practice and shop

func (s *ContentService) CreateLevel(ctx context.Context, level *models.PracticeLevel) error {
	if strings.TrimSpace(level.Name) == "" {
		return invalid("level name is required")
	}
	if level.RequiredProgress < 0 || level.RequiredProgress > 100 {
		return invalid("required_progress %d", level.RequiredProgress)
	}
	level.Games = nil
	return classify(s.db.WithContext(ctx).Create(level).Error)
}

func (s *ContentService) CreateGame(ctx context.Context, game *models.PracticeGame) error {
	if strings.TrimSpace(game.GameIdentifier) == "" || strings.TrimSpace(game.Name) == "" {
		return invalid("game_identifier and name are required")
	}
	db := s.db.WithContext(ctx)
	var level models.PracticeLevel
	if err := db.Where("id = ?", game.LevelID).Take(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("practice level", game.LevelID)
		}
		return classify(err)
	}
	return classify(db.Create(game).Error)
}

func (s *ContentService) CreateHeartPackage(ctx context.Context, pkg *models.HeartPackage) error {
	if strings.TrimSpace(pkg.Name) == "" || pkg.HeartsAmount <= 0 || pkg.RubyCost < 0 {
		return invalid("package needs a name, positive hearts_amount and non-negative ruby_cost")
	}
	return classify(s.db.WithContext(ctx).Create(pkg).Error)
}
