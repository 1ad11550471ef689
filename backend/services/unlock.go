package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"senya/backend/models"
	"senya/backend/progression"
)

// IsUnlocked reports whether the user may open a unit, lesson or practice level.
func (s *ProgressionService) IsUnlocked(ctx context.Context, kind progression.EntityKind, entityID, userID uint) (bool, error) {
	db := s.read(ctx)
	var (
		unlocked bool
		err      error
	)
	switch kind {
	case progression.KindUnit:
		unlocked, err = s.unitUnlocked(db, entityID, userID)
	case progression.KindLesson:
		unlocked, err = s.lessonUnlocked(db, entityID, userID)
	case progression.KindLevel:
		unlocked, err = s.levelUnlocked(ctx, entityID, userID)
	default:
		return false, fmt.Errorf("entity kind %q: %w", kind, progression.ErrInvalidInput)
	}
	return unlocked, classify(err)
}

func (s *ProgressionService) unitUnlocked(db *gorm.DB, unitID, userID uint) (bool, error) {
	var unit models.Unit
	err := db.Where("id = ? AND archived = ?", unitID, false).Take(&unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, notFound("unit", unitID)
	}
	if err != nil {
		return false, err
	}
	gate, err := unitGate(db, unit, userID)
	if err != nil {
		return false, err
	}
	return gate.Unlocked(), nil
}

func (s *ProgressionService) lessonUnlocked(db *gorm.DB, lessonID, userID uint) (bool, error) {
	lesson, err := activeLesson(db, lessonID)
	if err != nil {
		return false, err
	}

	var prev models.Lesson
	err = db.Where("unit_id = ? AND order_index < ? AND archived = ?", lesson.UnitID, lesson.OrderIndex, false).
		Order("order_index DESC").
		Take(&prev).Error
	switch {
	case err == nil:
		done, err := completedLessons(db, userID, []uint{prev.ID})
		if err != nil {
			return false, err
		}
		return progression.LessonGate{HasPrevious: true, PreviousCompleted: done[prev.ID]}.Unlocked(), nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, err
	}

	var unit models.Unit
	if err := db.Where("id = ?", lesson.UnitID).Take(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, notFound("unit", lesson.UnitID)
		}
		return false, err
	}
	gate, err := unitGate(db, unit, userID)
	if err != nil {
		return false, err
	}
	return progression.LessonGate{Unit: gate}.Unlocked(), nil
}

func (s *ProgressionService) levelUnlocked(ctx context.Context, levelID, userID uint) (bool, error) {
	var level models.PracticeLevel
	err := s.read(ctx).Where("id = ?", levelID).Take(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, notFound("practice level", levelID)
	}
	if err != nil {
		return false, err
	}
	if level.OrderIndex == 0 {
		return true, nil
	}
	overall, err := s.OverallProgress(ctx, userID)
	if err != nil {
		return false, err
	}
	return progression.LevelUnlocked(level.OrderIndex, level.RequiredProgress, overall), nil
}

// unitGate fetches the completion state of the nearest preceding active unit.
func unitGate(db *gorm.DB, unit models.Unit, userID uint) (progression.UnitGate, error) {
	gate := progression.UnitGate{OrderIndex: unit.OrderIndex}
	if unit.OrderIndex == 0 {
		return gate, nil
	}

	var prev models.Unit
	err := db.Where("order_index < ? AND archived = ?", unit.OrderIndex, false).
		Order("order_index DESC").
		Take(&prev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return gate, nil
	}
	if err != nil {
		return gate, err
	}
	gate.HasPredecessor = true

	var lessonIDs []uint
	if err := db.Model(&models.Lesson{}).
		Where("unit_id = ? AND archived = ?", prev.ID, false).
		Pluck("id", &lessonIDs).Error; err != nil {
		return gate, err
	}
	done, err := completedLessons(db, userID, lessonIDs)
	if err != nil {
		return gate, err
	}
	gate.PredecessorLessons = make([]bool, len(lessonIDs))
	for i, id := range lessonIDs {
		gate.PredecessorLessons[i] = done[id]
	}
	return gate, nil
}

func completedLessons(db *gorm.DB, userID uint, lessonIDs []uint) (map[uint]bool, error) {
	done := make(map[uint]bool, len(lessonIDs))
	if len(lessonIDs) == 0 {
		return done, nil
	}
	var ids []uint
	if err := db.Model(&models.LessonProgress{}).
		Where("user_id = ? AND lesson_id IN ? AND completed = ?", userID, lessonIDs, true).
		Pluck("lesson_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		done[id] = true
	}
	return done, nil
}

// OverallProgress is the user's mean progress across all active units. The
// value is cached when a cache is configured.
func (s *ProgressionService) OverallProgress(ctx context.Context, userID uint) (int, error) {
	if s.cache != nil {
		pct, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.logger.Printf("progress cache read for user %d: %v", userID, err)
		} else if ok {
			return pct, nil
		}
	}

	db := s.read(ctx)
	var units []models.Unit
	if err := db.Where("archived = ?", false).Find(&units).Error; err != nil {
		return 0, classify(err)
	}
	if len(units) == 0 {
		return 0, nil
	}
	unitIDs := make([]uint, len(units))
	for i, u := range units {
		unitIDs[i] = u.ID
	}

	var lessons []models.Lesson
	if err := db.Select("id", "unit_id").
		Where("unit_id IN ? AND archived = ?", unitIDs, false).
		Find(&lessons).Error; err != nil {
		return 0, classify(err)
	}
	var rows []models.LessonProgress
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return 0, classify(err)
	}
	stored := make(map[uint]int, len(rows))
	for _, row := range rows {
		stored[row.LessonID] = row.Progress
	}

	byUnit := make(map[uint][]int, len(units))
	for _, l := range lessons {
		byUnit[l.UnitID] = append(byUnit[l.UnitID], stored[l.ID])
	}
	perUnit := make([][]int, len(units))
	for i, u := range units {
		perUnit[i] = byUnit[u.ID]
	}
	pct := progression.OverallProgress(perUnit)

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, pct); err != nil {
			s.logger.Printf("progress cache write for user %d: %v", userID, err)
		}
	}
	return pct, nil
}

func (s *ProgressionService) invalidateOverall(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Printf("progress cache invalidate for user %d: %v", userID, err)
	}
}
