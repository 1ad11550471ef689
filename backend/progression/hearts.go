package progression

import "time"

const (
	MaxHearts     = 5
	HeartInterval = 10 * time.Minute
)

// RegenerateHearts credits one heart per full HeartInterval elapsed since
// lastUpdated, capped at MaxHearts. The returned timestamp advances by whole
// intervals only, so partial progress toward the next heart is kept.
// changed is false when no interval has elapsed; callers must not write then.
func RegenerateHearts(hearts int, lastUpdated *time.Time, now time.Time) (newHearts int, newLastUpdated time.Time, changed bool) {
	if lastUpdated == nil {
		return clampHearts(hearts), now, false
	}
	last := *lastUpdated
	gained := int64(now.Sub(last) / HeartInterval)
	if gained <= 0 {
		return clampHearts(hearts), last, false
	}

	next := int64(hearts) + gained
	if next > MaxHearts {
		next = MaxHearts
	}
	return clampHearts(int(next)), last.Add(time.Duration(gained) * HeartInterval), true
}

// SecondsUntilNextHeart reports the wait before the next regenerated heart,
// or 0 when the user is already full.
func SecondsUntilNextHeart(hearts int, lastUpdated *time.Time, now time.Time) int {
	if hearts >= MaxHearts {
		return 0
	}
	last := now
	if lastUpdated != nil {
		last = *lastUpdated
	}
	elapsed := now.Sub(last)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := HeartInterval - elapsed%HeartInterval
	return int(remaining / time.Second)
}

// LoseHearts removes n hearts, never going below zero.
func LoseHearts(hearts, n int) int {
	return clampHearts(hearts - n)
}

// AddHearts credits n hearts up to MaxHearts.
func AddHearts(hearts, n int) int {
	return clampHearts(hearts + n)
}

func clampHearts(h int) int {
	switch {
	case h < 0:
		return 0
	case h > MaxHearts:
		return MaxHearts
	}
	return h
}
