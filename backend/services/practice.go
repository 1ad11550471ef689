package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"senya/backend/models"
	"senya/backend/progression"
)

// UpdatePracticeScore applies one finished game round.
func (s *ProgressionService) UpdatePracticeScore(ctx context.Context, userID uint, round progression.PracticeRound) (progression.PracticeOutcome, error) {
	if err := round.Validate(); err != nil {
		return progression.PracticeOutcome{}, err
	}

	var outcome progression.PracticeOutcome
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var game models.PracticeGame
		err := tx.Where("game_identifier = ?", round.GameID).Take(&game).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("unknown game %q: %w", round.GameID, progression.ErrInvalidInput)
		}
		if err != nil {
			return err
		}

		var level models.PracticeLevel
		err = tx.Where("id = ?", round.LevelID).Take(&level).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("practice level", round.LevelID)
		}
		if err != nil {
			return err
		}

		profile, err := lockProfile(tx, userID)
		if err != nil {
			return err
		}

		progress := models.PracticeProgress{UserID: userID, LevelID: level.ID, GameID: game.ID}
		err = tx.Clauses(forUpdate).
			Where("user_id = ? AND level_id = ? AND game_id = ?", userID, level.ID, game.ID).
			Take(&progress).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		out := progression.ApplyPracticeRound(&progress, profile, level.Name, round)

		if err := tx.Save(&progress).Error; err != nil {
			return err
		}
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		outcome = out
		return nil
	})
	if err != nil {
		return progression.PracticeOutcome{}, err
	}

	if outcome.RubiesEarned > 0 {
		s.logger.Printf("user %d scored %d in %s (level %d): +%d rubies", userID, round.Score, round.GameID, round.LevelID, outcome.RubiesEarned)
	}
	return outcome, nil
}

type GameProgressView struct {
	HighScore int  `json:"high_score"`
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

type PracticeGameView struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	UserProgress GameProgressView `json:"userProgress"`
}

type PracticeLevelView struct {
	ID               uint               `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	RequiredProgress int                `json:"required_progress"`
	Progress         int                `json:"progress"`
	Unlocked         bool               `json:"unlocked"`
	Games            []PracticeGameView `json:"games"`
}

type PracticeLevelsView struct {
	Levels          []PracticeLevelView `json:"levels"`
	OverallProgress int                 `json:"overall_progress"`
}

// PracticeLevels lists levels in order with the user's progress per game.
// A level's progress is the best progress among its games.
func (s *ProgressionService) PracticeLevels(ctx context.Context, userID uint) (PracticeLevelsView, error) {
	db := s.read(ctx)

	var levels []models.PracticeLevel
	if err := db.Preload("Games").Order("order_index").Find(&levels).Error; err != nil {
		return PracticeLevelsView{}, classify(err)
	}
	overall, err := s.OverallProgress(ctx, userID)
	if err != nil {
		return PracticeLevelsView{}, err
	}

	var rows []models.PracticeProgress
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return PracticeLevelsView{}, classify(err)
	}
	type gameKey struct{ level, game uint }
	byGame := make(map[gameKey]models.PracticeProgress, len(rows))
	byLevel := make(map[uint]int)
	for _, row := range rows {
		byGame[gameKey{row.LevelID, row.GameID}] = row
		if row.Progress > byLevel[row.LevelID] {
			byLevel[row.LevelID] = row.Progress
		}
	}

	view := PracticeLevelsView{Levels: make([]PracticeLevelView, 0, len(levels)), OverallProgress: overall}
	for _, level := range levels {
		lv := PracticeLevelView{
			ID:               level.ID,
			Name:             level.Name,
			Description:      level.Description,
			RequiredProgress: level.RequiredProgress,
			Progress:         byLevel[level.ID],
			Unlocked:         progression.LevelUnlocked(level.OrderIndex, level.RequiredProgress, overall),
			Games:            make([]PracticeGameView, 0, len(level.Games)),
		}
		for _, game := range level.Games {
			row := byGame[gameKey{level.ID, game.ID}]
			lv.Games = append(lv.Games, PracticeGameView{
				ID:          game.GameIdentifier,
				Name:        game.Name,
				Description: game.Description,
				UserProgress: GameProgressView{
					HighScore: row.HighScore,
					Progress:  row.Progress,
					Completed: row.Completed,
				},
			})
		}
		view.Levels = append(view.Levels, lv)
	}
	return view, nil
}

// PracticeSigns lists active signs of a difficulty; unknown difficulties
// fall back to beginner.
func (s *ProgressionService) PracticeSigns(ctx context.Context, difficulty models.Difficulty) ([]models.Sign, error) {
	switch difficulty {
	case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
	default:
		difficulty = models.DifficultyBeginner
	}
	var signs []models.Sign
	err := s.read(ctx).
		Where("difficulty_level = ? AND archived = ?", difficulty, false).
		Order("id").
		Find(&signs).Error
	return signs, classify(err)
}
