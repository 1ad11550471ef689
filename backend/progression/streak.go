package progression

import "time"

// NextStreak applies one streak-contributing activity at now, given the
// previous activity timestamp of the same kind. Days are UTC calendar days.
func NextStreak(streak int, previous *time.Time, now time.Time) int {
	if previous == nil {
		return 1
	}
	today := civilDay(now)
	last := civilDay(*previous)
	switch {
	case last.Equal(today):
		return streak
	case last.Equal(today.AddDate(0, 0, -1)):
		return streak + 1
	default:
		return 1
	}
}

// SameDay reports whether t falls on the same UTC calendar day as now.
func SameDay(t *time.Time, now time.Time) bool {
	return t != nil && civilDay(*t).Equal(civilDay(now))
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
