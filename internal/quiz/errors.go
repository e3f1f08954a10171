package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIntent is returned when an intent is not allowed in the
	// session's current phase. The session is left untouched.
	ErrInvalidIntent = errors.New("invalid intent")

	// ErrStaleContent is returned when a fetch result arrives for a request
	// that has since been reset or superseded. The result is discarded.
	ErrStaleContent = errors.New("stale content result")

	// ErrContentUnavailable matches any *ContentUnavailableError via errors.Is.
	ErrContentUnavailable = errors.New("content unavailable")
)

// ContentUnavailableError reports that the provider failed or returned a
// malformed set. The session is back in PhaseIdle and the request can be
// retried.
type ContentUnavailableError struct {
	Err error
}

func (e *ContentUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("content unavailable: %v", e.Err)
	}
	return "content unavailable"
}

func (e *ContentUnavailableError) Unwrap() error { return e.Err }

func (e *ContentUnavailableError) Is(target error) bool {
	return target == ErrContentUnavailable
}

// PersistenceError reports that a completed attempt could not be saved. The
// attempt is still reflected in memory for the running process.
type PersistenceError struct {
	Attempt Attempt
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("attempt %s not saved: %v", e.Attempt.ID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func invalidIntent(phase Phase, in Intent) error {
	return fmt.Errorf("%w: %s in phase %s", ErrInvalidIntent, in.intentName(), phase)
}
