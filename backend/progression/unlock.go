package progression

import "math"

// EntityKind names what an unlock query is about.
type EntityKind string

const (
	KindUnit   EntityKind = "unit"
	KindLesson EntityKind = "lesson"
	KindLevel  EntityKind = "level"
)

func (k EntityKind) Valid() bool {
	switch k {
	case KindUnit, KindLesson, KindLevel:
		return true
	}
	return false
}

// UnitGate is the already-fetched prerequisite state of a unit.
type UnitGate struct {
	OrderIndex int
	// HasPredecessor is false when no non-archived unit has a lower order index.
	HasPredecessor bool
	// PredecessorLessons holds one completion flag per non-archived lesson of
	// the nearest preceding unit.
	PredecessorLessons []bool
}

// Unlocked: the first unit is always open; otherwise every lesson of the
// nearest preceding unit must be completed. A predecessor without lessons
// keeps the unit locked.
func (g UnitGate) Unlocked() bool {
	if g.OrderIndex == 0 || !g.HasPredecessor {
		return true
	}
	if len(g.PredecessorLessons) == 0 {
		return false
	}
	for _, done := range g.PredecessorLessons {
		if !done {
			return false
		}
	}
	return true
}

// LessonGate is the already-fetched prerequisite state of a lesson.
type LessonGate struct {
	HasPrevious       bool
	PreviousCompleted bool
	Unit              UnitGate
}

// Unlocked follows the nearest preceding lesson in the same unit, or the
// enclosing unit when the lesson is first in it.
func (g LessonGate) Unlocked() bool {
	if g.HasPrevious {
		return g.PreviousCompleted
	}
	return g.Unit.Unlocked()
}

// LevelUnlocked gates a practice level on overall curriculum progress.
func LevelUnlocked(orderIndex, requiredProgress, overallProgress int) bool {
	return orderIndex == 0 || overallProgress >= requiredProgress
}

// OverallProgress averages per-unit progress across all non-archived units.
// Each entry lists the stored progress of that unit's non-archived lessons
// (0 where the user has no row). Units with no lessons contribute 0 but still
// count in the denominator. The mean is rounded half to even.
func OverallProgress(units [][]int) int {
	if len(units) == 0 {
		return 0
	}
	var total float64
	for _, lessons := range units {
		if len(lessons) == 0 {
			continue
		}
		sum := 0
		for _, p := range lessons {
			sum += p
		}
		total += float64(sum) / float64(len(lessons))
	}
	return int(math.RoundToEven(total / float64(len(units))))
}
