package content

import (
	"os"
	"time"
)

// Config controls the behavior of the LLM-backed provider.
type Config struct {
	// Validators run in order on every generated set; the first failure
	// stops the pipeline.
	Validators []Validator

	// Language is the ISO code the passage and questions are written in.
	Language string

	// QuestionCount is the number of questions requested per set.
	QuestionCount int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorPassages is how many recent passage topics are listed in the
	// prompt so the model picks a new one.
	MaxPriorPassages int

	// ValidationRetries is how many more times a set rejected by a
	// retryable validation error is regenerated, with the rejection reason
	// fed back to the model.
	ValidationRetries int

	// Timeout bounds a single FetchContent call, retries included. Zero
	// means no limit.
	Timeout time.Duration
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctOptionsValidator{},
		},
		Language:          "es",
		QuestionCount:     5,
		MaxTokens:         2048,
		Temperature:       0.7,
		MaxPriorPassages:  5,
		ValidationRetries: 1,
		Timeout:           45 * time.Second,
	}
}

// ConfigFromEnv returns DefaultConfig with LECTIZ_CONTENT_LANGUAGE applied.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LECTIZ_CONTENT_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	return cfg
}
