package progression

import (
	"fmt"
	"strings"

	"senya/backend/models"
)

const (
	PracticeCompleteScore = 80
	PracticeHeartScore    = 50
	NewHighScoreBonus     = 5
)

// rubyTiers are checked top-down; only the first match pays.
var rubyTiers = []struct {
	minScore int
	rubies   int
}{
	{150, 10},
	{90, 5},
	{70, 3},
}

// PracticeRound is one finished game round. Score is in game points and may
// exceed 100; only the stored progress percentage is clamped.
type PracticeRound struct {
	LevelID    uint   `json:"level_id"`
	GameID     string `json:"game_id"`
	Score      int    `json:"score"`
	HeartsLost int    `json:"hearts_lost"`
}

func (r PracticeRound) Validate() error {
	if r.GameID == "" {
		return fmt.Errorf("game_id is required: %w", ErrInvalidInput)
	}
	if r.Score < 0 {
		return fmt.Errorf("score %d: %w", r.Score, ErrInvalidInput)
	}
	if r.HeartsLost < 0 {
		return fmt.Errorf("hearts_lost %d: %w", r.HeartsLost, ErrInvalidInput)
	}
	return nil
}

type PracticeOutcome struct {
	LevelProgress int  `json:"level_progress"`
	GameHighScore int  `json:"game_high_score"`
	RubiesEarned  int  `json:"rubies_earned"`
	TotalRubies   int  `json:"total_rubies"`
	Hearts        int  `json:"hearts"`
	Completed     bool `json:"completed"`
}

// DifficultyMultiplier derives the reward multiplier from a level name.
func DifficultyMultiplier(levelName string) int {
	name := strings.ToLower(levelName)
	switch {
	case strings.Contains(name, string(models.DifficultyIntermediate)):
		return 2
	case strings.Contains(name, string(models.DifficultyAdvanced)):
		return 3
	}
	return 1
}

// PracticeRubies is the tier reward plus the new-high-score bonus. The bonus
// needs a previous non-zero high score, so a first score never earns it.
func PracticeRubies(score, oldHigh, multiplier int) int {
	rubies := 0
	for _, tier := range rubyTiers {
		if score >= tier.minScore {
			rubies = tier.rubies * multiplier
			break
		}
	}
	if score > oldHigh && oldHigh > 0 {
		rubies += NewHighScoreBonus * multiplier
	}
	return rubies
}

// ApplyPracticeRound mutates progress and profile in place.
func ApplyPracticeRound(progress *models.PracticeProgress, profile *models.UserProfile, levelName string, round PracticeRound) PracticeOutcome {
	multiplier := DifficultyMultiplier(levelName)

	if pct := clampPercent(round.Score); pct > progress.Progress {
		progress.Progress = pct
	}
	oldHigh := progress.HighScore
	if round.Score > oldHigh {
		progress.HighScore = round.Score
	}
	if round.Score >= PracticeCompleteScore && !progress.Completed {
		progress.Completed = true
	}

	// A failing score costs exactly one heart whatever the client reported.
	if round.Score < PracticeHeartScore {
		profile.Hearts = LoseHearts(profile.Hearts, 1)
	} else if round.HeartsLost > 0 {
		profile.Hearts = LoseHearts(profile.Hearts, round.HeartsLost)
	}

	rubies := PracticeRubies(round.Score, oldHigh, multiplier)
	profile.Rubies += rubies

	return PracticeOutcome{
		LevelProgress: progress.Progress,
		GameHighScore: progress.HighScore,
		RubiesEarned:  rubies,
		TotalRubies:   profile.Rubies,
		Hearts:        profile.Hearts,
		Completed:     progress.Completed,
	}
}
