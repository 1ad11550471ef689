package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"senya/backend/models"
	"senya/backend/progression"
)

const DailyChallengeRubies = 10

type ChallengeResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Rubies       int    `json:"rubies"`
	Streak       int    `json:"streak"`
	RubiesEarned int    `json:"rubies_earned"`
}

// DailyChallenge picks one of the user's completed lessons at random.
func (s *ProgressionService) DailyChallenge(ctx context.Context, userID uint) (models.Lesson, error) {
	db := s.read(ctx)

	var lessonIDs []uint
	if err := db.Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id AND lessons.archived = ? AND lessons.deleted_at IS NULL", false).
		Where("lesson_progress.user_id = ? AND lesson_progress.completed = ?", userID, true).
		Order("lesson_progress.lesson_id").
		Pluck("lesson_progress.lesson_id", &lessonIDs).Error; err != nil {
		return models.Lesson{}, classify(err)
	}
	if len(lessonIDs) == 0 {
		return models.Lesson{}, fmt.Errorf("no completed lessons for user %d: %w", userID, progression.ErrNotFound)
	}

	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return models.Lesson{}, err
	}
	if progression.SameDay(profile.LastChallengeDate, s.clock.Now()) {
		return models.Lesson{}, progression.ErrAlreadyDone
	}

	var lesson models.Lesson
	err = db.Preload("Signs", func(db *gorm.DB) *gorm.DB {
		return db.Where("archived = ?", false).Order("id")
	}).Where("id = ?", lessonIDs[s.pick(len(lessonIDs))]).Take(&lesson).Error
	return lesson, classify(err)
}

// CompleteDailyChallenge credits the once-a-day challenge reward and applies
// the streak rule against the last challenge date.
func (s *ProgressionService) CompleteDailyChallenge(ctx context.Context, userID uint) (ChallengeResult, error) {
	var result ChallengeResult
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		profile, err := lockProfile(tx, userID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		if progression.SameDay(profile.LastChallengeDate, now) {
			result = ChallengeResult{
				Success: false,
				Message: "Daily challenge already completed today",
				Rubies:  profile.Rubies,
				Streak:  profile.Streak,
			}
			return nil
		}

		profile.Rubies += DailyChallengeRubies
		profile.Streak = progression.NextStreak(profile.Streak, profile.LastChallengeDate, now)
		profile.LastChallengeDate = &now
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		result = ChallengeResult{
			Success:      true,
			Rubies:       profile.Rubies,
			Streak:       profile.Streak,
			RubiesEarned: DailyChallengeRubies,
		}
		return nil
	})
	if err == nil && result.Success {
		s.logger.Printf("user %d completed the daily challenge: streak %d", userID, result.Streak)
	}
	return result, err
}
