package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"senya/backend/models"
)

func TestDifficultyMultiplier(t *testing.T) {
	assert.Equal(t, 1, DifficultyMultiplier("Beginner Basics"))
	assert.Equal(t, 2, DifficultyMultiplier("INTERMEDIATE drills"))
	assert.Equal(t, 3, DifficultyMultiplier("Advanced Signs"))
	assert.Equal(t, 1, DifficultyMultiplier(""))
}

func TestPracticeRubies(t *testing.T) {
	tests := []struct {
		name       string
		score      int
		oldHigh    int
		multiplier int
		want       int
	}{
		{"below tiers", 60, 0, 1, 0},
		{"lowest tier", 70, 0, 1, 3},
		{"middle tier", 95, 0, 2, 10},
		{"top tier only", 150, 0, 1, 10},
		{"first score has no high bonus", 160, 0, 2, 20},
		{"top tier plus high bonus", 160, 50, 2, 30},
		{"high bonus alone", 40, 20, 3, 15},
		{"not a new high", 90, 90, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PracticeRubies(tt.score, tt.oldHigh, tt.multiplier))
		})
	}
}

func TestApplyPracticeRoundIntermediateHighScore(t *testing.T) {
	progress := &models.PracticeProgress{HighScore: 50, Progress: 50}
	profile := &models.UserProfile{Hearts: 5, Rubies: 100}

	out := ApplyPracticeRound(progress, profile, "Intermediate", PracticeRound{Score: 160})

	assert.Equal(t, 30, out.RubiesEarned)
	assert.Equal(t, 130, out.TotalRubies)
	assert.Equal(t, 100, out.LevelProgress)
	assert.Equal(t, 160, out.GameHighScore)
	assert.True(t, out.Completed)
	assert.Equal(t, 5, out.Hearts)
}

func TestApplyPracticeRoundLowScoreCostsOneHeart(t *testing.T) {
	for _, lost := range []int{0, 1, 4} {
		profile := &models.UserProfile{Hearts: 3}
		out := ApplyPracticeRound(&models.PracticeProgress{}, profile, "Beginner", PracticeRound{Score: 40, HeartsLost: lost})
		assert.Equal(t, 2, out.Hearts, "hearts_lost=%d", lost)
	}

	profile := &models.UserProfile{Hearts: 0}
	out := ApplyPracticeRound(&models.PracticeProgress{}, profile, "Beginner", PracticeRound{Score: 10})
	assert.Equal(t, 0, out.Hearts)
}

func TestApplyPracticeRoundReportedHeartsLost(t *testing.T) {
	profile := &models.UserProfile{Hearts: 3}
	out := ApplyPracticeRound(&models.PracticeProgress{}, profile, "Beginner", PracticeRound{Score: 60, HeartsLost: 2})
	assert.Equal(t, 1, out.Hearts)

	out = ApplyPracticeRound(&models.PracticeProgress{}, profile, "Beginner", PracticeRound{Score: 60, HeartsLost: 9})
	assert.Equal(t, 0, out.Hearts)
}

func TestApplyPracticeRoundProgressMonotonic(t *testing.T) {
	progress := &models.PracticeProgress{}
	profile := &models.UserProfile{Hearts: 5}

	prev := 0
	for _, score := range []int{30, 85, 10, 120, 0, 99, 60} {
		out := ApplyPracticeRound(progress, profile, "Beginner", PracticeRound{Score: score})
		assert.GreaterOrEqual(t, out.LevelProgress, prev)
		assert.LessOrEqual(t, out.LevelProgress, 100)
		prev = out.LevelProgress
	}
	assert.Equal(t, 100, progress.Progress)
	assert.Equal(t, 120, progress.HighScore)
	assert.True(t, progress.Completed)
}

func TestApplyPracticeRoundCompletionSticky(t *testing.T) {
	progress := &models.PracticeProgress{}
	profile := &models.UserProfile{Hearts: 5}

	ApplyPracticeRound(progress, profile, "Beginner", PracticeRound{Score: 80})
	assert.True(t, progress.Completed)
	out := ApplyPracticeRound(progress, profile, "Beginner", PracticeRound{Score: 5})
	assert.True(t, out.Completed)
}

func TestPracticeRoundValidate(t *testing.T) {
	assert.NoError(t, PracticeRound{GameID: "memory", Score: 0}.Validate())
	assert.ErrorIs(t, PracticeRound{Score: 10}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, PracticeRound{GameID: "memory", Score: -1}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, PracticeRound{GameID: "memory", HeartsLost: -1}.Validate(), ErrInvalidInput)
}
