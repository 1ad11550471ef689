package progression

import "errors"

var (
	// ErrNotFound means a referenced lesson, level, game, package or profile is absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned before any write for values outside their domain.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTransient marks a store conflict or timeout; the whole operation was
	// rolled back and may be retried.
	ErrTransient = errors.New("transient store failure")
	// ErrAlreadyDone is returned for once-per-day actions repeated on the same day.
	ErrAlreadyDone        = errors.New("already completed today")
	ErrInsufficientRubies = errors.New("not enough rubies")
)
