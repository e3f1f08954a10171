package content

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/lectiz/internal/quiz"
)

const (
	maxPassageChars     = 4000
	maxPromptChars      = 300
	maxExplanationChars = 600
)

// StructuralValidator applies the quiz's own structural rules plus length
// limits on the generated text.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(set *quiz.ContentSet, _ quiz.Difficulty) *ValidationError {
	if err := set.Validate(); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error(), Retryable: true}
	}
	if strings.TrimSpace(set.Passage) == "" {
		return &ValidationError{Validator: v.Name(), Message: "passage is empty", Retryable: true}
	}
	if utf8.RuneCountInString(set.Passage) > maxPassageChars {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("passage exceeds %d characters", maxPassageChars),
			Retryable: true,
		}
	}
	for i, q := range set.Questions {
		if utf8.RuneCountInString(q.Prompt) > maxPromptChars {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d prompt exceeds %d characters", i+1, maxPromptChars),
				Retryable: true,
			}
		}
		if strings.TrimSpace(q.Explanation) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has no explanation", i+1),
				Retryable: true,
			}
		}
		if utf8.RuneCountInString(q.Explanation) > maxExplanationChars {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d explanation exceeds %d characters", i+1, maxExplanationChars),
				Retryable: true,
			}
		}
	}
	return nil
}

// DistinctOptionsValidator rejects questions whose options repeat, which
// would make the correct answer ambiguous.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(set *quiz.ContentSet, _ quiz.Difficulty) *ValidationError {
	for i, q := range set.Questions {
		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			key := strings.ToLower(strings.TrimSpace(opt))
			if key == "" {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d has an empty option", i+1),
					Retryable: true,
				}
			}
			if seen[key] {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d repeats option %q", i+1, opt),
					Retryable: true,
				}
			}
			seen[key] = true
		}
	}
	return nil
}
