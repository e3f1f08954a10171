package quiz

import (
	"context"
	"time"
)

// Attempt is the recorded outcome of one completed quiz run. It is created
// exactly once per completion and never edited afterwards.
type Attempt struct {
	ID            string
	Timestamp     time.Time
	Score         int
	QuestionCount int
	Difficulty    Difficulty
}

// Accuracy returns Score/QuestionCount, or 0 for an empty attempt.
func (a Attempt) Accuracy() float64 {
	if a.QuestionCount == 0 {
		return 0
	}
	return float64(a.Score) / float64(a.QuestionCount)
}

// AttemptRecorder appends a completed attempt to durable history.
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, a Attempt) error
}
