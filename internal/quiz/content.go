package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// OptionsPerQuestion is the fixed number of answer options per question.
const OptionsPerQuestion = 4

// ErrMalformedContent marks a content set that fails structural checks.
var ErrMalformedContent = errors.New("malformed content")

// Question is a single multiple-choice comprehension item.
type Question struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// ContentSet is a reading passage plus its ordered questions. A set is
// replaced wholesale on every content request and never mutated in place.
type ContentSet struct {
	Passage   string     `json:"passage"`
	Questions []Question `json:"questions"`
}

// ContentProvider supplies a content set for a difficulty level.
type ContentProvider interface {
	FetchContent(ctx context.Context, difficulty Difficulty) (*ContentSet, error)
}

// IsCorrect reports whether option is the correct answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectIndex
}

// Validate checks the structural rules every question must satisfy.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrMalformedContent)
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("%w: %d options, want %d", ErrMalformedContent, len(q.Options), OptionsPerQuestion)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d out of range", ErrMalformedContent, q.CorrectIndex)
	}
	return nil
}

// Validate rejects a set with no questions or any malformed question.
func (c *ContentSet) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: no content", ErrMalformedContent)
	}
	if len(c.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrMalformedContent)
	}
	for i, q := range c.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// Clone returns a deep copy so the session never shares slices with the
// provider that produced the set.
func (c *ContentSet) Clone() *ContentSet {
	if c == nil {
		return nil
	}
	out := &ContentSet{
		Passage:   c.Passage,
		Questions: make([]Question, len(c.Questions)),
	}
	for i, q := range c.Questions {
		q.Options = append([]string(nil), q.Options...)
		out.Questions[i] = q
	}
	return out
}
