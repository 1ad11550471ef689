package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"senya/backend/models"
	"senya/backend/progression"
)

func activeLesson(db *gorm.DB, lessonID uint) (models.Lesson, error) {
	var lesson models.Lesson
	err := db.Where("id = ? AND archived = ?", lessonID, false).Take(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return lesson, notFound("lesson", lessonID)
	}
	return lesson, err
}

// UpdateLessonProgress applies one quiz answer. The lesson's ruby reward and
// the lesson streak are credited only on the call that completes the lesson.
func (s *ProgressionService) UpdateLessonProgress(ctx context.Context, userID, lessonID uint, answer progression.LessonAnswer) (progression.LessonOutcome, error) {
	if err := answer.Validate(); err != nil {
		return progression.LessonOutcome{}, err
	}

	var outcome progression.LessonOutcome
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		lesson, err := activeLesson(tx, lessonID)
		if err != nil {
			return err
		}
		profile, err := lockProfile(tx, userID)
		if err != nil {
			return err
		}

		progress := models.LessonProgress{UserID: userID, LessonID: lessonID}
		err = tx.Clauses(forUpdate).
			Where("user_id = ? AND lesson_id = ?", userID, lessonID).
			Take(&progress).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		out := progression.ApplyLessonAnswer(&progress, profile, lesson.RubiesReward, answer, s.clock.Now())

		if err := tx.Save(&progress).Error; err != nil {
			return err
		}
		if err := tx.Save(profile).Error; err != nil {
			return err
		}

		if out.JustCompleted {
			var next int64
			if err := tx.Model(&models.Lesson{}).
				Where("id = ? AND archived = ?", lesson.ID+1, false).
				Count(&next).Error; err != nil {
				return err
			}
			out.NextLessonUnlocked = next > 0
		}
		outcome = out
		return nil
	})
	if err != nil {
		return progression.LessonOutcome{}, err
	}

	s.invalidateOverall(ctx, userID)
	if outcome.JustCompleted {
		s.logger.Printf("user %d completed lesson %d: +%d rubies", userID, lessonID, outcome.RubiesEarned)
	}
	return outcome, nil
}

// LessonProgress returns the user's row for a lesson, zero-valued when the
// user has not answered anything yet.
func (s *ProgressionService) LessonProgress(ctx context.Context, userID, lessonID uint) (models.LessonProgress, error) {
	db := s.read(ctx)
	if _, err := activeLesson(db, lessonID); err != nil {
		return models.LessonProgress{}, classify(err)
	}

	progress := models.LessonProgress{UserID: userID, LessonID: lessonID}
	err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).Take(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.LessonProgress{UserID: userID, LessonID: lessonID}, nil
	}
	return progress, classify(err)
}

// UnitProgress averages the user's progress over a unit's active lessons.
func (s *ProgressionService) UnitProgress(ctx context.Context, userID, unitID uint) (models.UnitProgress, error) {
	db := s.read(ctx)

	var lessonIDs []uint
	if err := db.Model(&models.Lesson{}).
		Where("unit_id = ? AND archived = ?", unitID, false).
		Pluck("id", &lessonIDs).Error; err != nil {
		return models.UnitProgress{}, classify(err)
	}
	if len(lessonIDs) == 0 {
		return models.UnitProgress{}, nil
	}

	var rows []models.LessonProgress
	if err := db.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).Find(&rows).Error; err != nil {
		return models.UnitProgress{}, classify(err)
	}

	total, completed := 0, 0
	for _, row := range rows {
		total += row.Progress
		if row.Completed {
			completed++
		}
	}
	return models.UnitProgress{
		ProgressPercentage: float64(total) / float64(len(lessonIDs)),
		CompletedLessons:   completed,
		TotalLessons:       len(lessonIDs),
	}, nil
}

// Units lists active units in order, each with its active lessons in order.
func (s *ProgressionService) Units(ctx context.Context) ([]models.Unit, error) {
	var units []models.Unit
	err := s.read(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("archived = ?", false).Order("order_index")
		}).
		Where("archived = ?", false).
		Order("order_index").
		Find(&units).Error
	return units, classify(err)
}
