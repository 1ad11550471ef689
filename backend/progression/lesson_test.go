package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"senya/backend/models"
)

func TestApplyLessonAnswerCompletionReward(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	progress := &models.LessonProgress{Progress: 90}
	profile := &models.UserProfile{Hearts: 5, Rubies: 7}

	out := ApplyLessonAnswer(progress, profile, 20, LessonAnswer{Progress: 100, IsCorrect: true, CurrentQuestion: 10}, now)

	assert.Equal(t, 100, out.Progress)
	assert.True(t, out.Completed)
	assert.True(t, out.JustCompleted)
	assert.Equal(t, 20, out.RubiesEarned)
	assert.Equal(t, 5, out.HeartsRemaining)
	assert.Equal(t, 27, profile.Rubies)
	assert.Equal(t, 1, profile.Streak)
	require.NotNil(t, profile.LastLessonDate)
	assert.Equal(t, now, *profile.LastLessonDate)
	assert.Equal(t, 10, progress.LastQuestion)
}

func TestApplyLessonAnswerRewardsOnlyOnce(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	progress := &models.LessonProgress{}
	profile := &models.UserProfile{Hearts: 5}

	steps := []int{30, 60, 100, 100, 80, 100}
	earned := make([]int, 0, len(steps))
	for i, p := range steps {
		out := ApplyLessonAnswer(progress, profile, 15, LessonAnswer{Progress: p, IsCorrect: true, CurrentQuestion: i}, now)
		earned = append(earned, out.RubiesEarned)
	}

	assert.Equal(t, []int{0, 0, 15, 0, 0, 0}, earned)
	assert.Equal(t, 15, profile.Rubies)
	assert.Equal(t, 100, progress.Progress)
	assert.True(t, progress.Completed)
}

func TestApplyLessonAnswerClampsAndNeverLowers(t *testing.T) {
	now := time.Now().UTC()
	progress := &models.LessonProgress{Progress: 40}
	profile := &models.UserProfile{Hearts: 3}

	out := ApplyLessonAnswer(progress, profile, 0, LessonAnswer{Progress: -20, IsCorrect: true}, now)
	assert.Equal(t, 40, out.Progress)

	out = ApplyLessonAnswer(progress, profile, 0, LessonAnswer{Progress: 250, IsCorrect: true}, now)
	assert.Equal(t, 100, out.Progress)
	assert.True(t, out.Completed)
}

func TestApplyLessonAnswerWrongAnswerCostsHeart(t *testing.T) {
	now := time.Now().UTC()
	progress := &models.LessonProgress{}
	profile := &models.UserProfile{Hearts: 1}

	out := ApplyLessonAnswer(progress, profile, 0, LessonAnswer{Progress: 10, IsCorrect: false}, now)
	assert.Equal(t, 0, out.HeartsRemaining)

	out = ApplyLessonAnswer(progress, profile, 0, LessonAnswer{Progress: 20, IsCorrect: false}, now)
	assert.Equal(t, 0, out.HeartsRemaining)
}

func TestApplyLessonAnswerExtendsLessonStreak(t *testing.T) {
	yesterday := time.Date(2024, 6, 2, 21, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	profile := &models.UserProfile{Hearts: 5, Streak: 4, LastLessonDate: &yesterday}

	ApplyLessonAnswer(&models.LessonProgress{}, profile, 5, LessonAnswer{Progress: 100, IsCorrect: true}, now)
	assert.Equal(t, 5, profile.Streak)

	// A second lesson the same day keeps the streak.
	ApplyLessonAnswer(&models.LessonProgress{}, profile, 5, LessonAnswer{Progress: 100, IsCorrect: true}, now.Add(time.Hour))
	assert.Equal(t, 5, profile.Streak)
	assert.Equal(t, 10, profile.Rubies)
}

func TestLessonAnswerValidate(t *testing.T) {
	assert.NoError(t, LessonAnswer{CurrentQuestion: 0}.Validate())
	assert.ErrorIs(t, LessonAnswer{CurrentQuestion: -1}.Validate(), ErrInvalidInput)
}
