package progression

import (
	"fmt"
	"time"

	"senya/backend/models"
)

const CompletionThreshold = 100

// LessonAnswer is one quiz-answer event. Progress is the cumulative
// percentage the client believes the user has reached.
type LessonAnswer struct {
	Progress        int  `json:"progress"`
	IsCorrect       bool `json:"is_correct"`
	CurrentQuestion int  `json:"current_question"`
}

func (a LessonAnswer) Validate() error {
	if a.CurrentQuestion < 0 {
		return fmt.Errorf("current_question %d: %w", a.CurrentQuestion, ErrInvalidInput)
	}
	return nil
}

// LessonOutcome is what ApplyLessonAnswer changed. NextLessonUnlocked is
// filled in by the caller, which owns the store.
type LessonOutcome struct {
	Progress           int  `json:"progress"`
	Completed          bool `json:"completed"`
	HeartsRemaining    int  `json:"hearts_remaining"`
	RubiesEarned       int  `json:"rubies_earned"`
	NextLessonUnlocked bool `json:"next_lesson_unlocked"`
	// JustCompleted is true only on the call that crossed into completion.
	JustCompleted bool `json:"-"`
}

// ApplyLessonAnswer mutates progress and profile in place. Progress is clamped
// to [0,100] and never lowered. The completion reward and the lesson streak
// fire once, on the call that first reaches 100 while not yet completed.
func ApplyLessonAnswer(progress *models.LessonProgress, profile *models.UserProfile, rubiesReward int, answer LessonAnswer, now time.Time) LessonOutcome {
	next := clampPercent(answer.Progress)
	if next > progress.Progress {
		progress.Progress = next
	}
	progress.LastQuestion = answer.CurrentQuestion

	if !answer.IsCorrect {
		profile.Hearts = LoseHearts(profile.Hearts, 1)
	}

	out := LessonOutcome{}
	if progress.Progress >= CompletionThreshold && !progress.Completed {
		progress.Completed = true
		profile.Rubies += rubiesReward
		profile.Streak = NextStreak(profile.Streak, profile.LastLessonDate, now)
		stamp := now
		profile.LastLessonDate = &stamp
		out.RubiesEarned = rubiesReward
		out.JustCompleted = true
	}

	out.Progress = progress.Progress
	out.Completed = progress.Completed
	out.HeartsRemaining = profile.Hearts
	return out
}

func clampPercent(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
