package content

import (
	"fmt"

	"github.com/abhisek/lectiz/internal/quiz"
)

// Validator checks a generated set before it reaches the quiz.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	// Validate returns nil if set passes.
	Validate(set *quiz.ContentSet, difficulty quiz.Difficulty) *ValidationError
}

// ValidationError describes why a generated set was rejected.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
