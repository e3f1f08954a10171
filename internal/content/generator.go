package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/lectiz/internal/llm"
	"github.com/abhisek/lectiz/internal/quiz"
)

// LLMProvider implements quiz.ContentProvider by asking an LLM for a fresh
// passage and question set.
type LLMProvider struct {
	provider llm.Provider
	config   Config

	mu     sync.Mutex
	recent []string
}

var _ quiz.ContentProvider = (*LLMProvider)(nil)

// New creates an LLMProvider with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMProvider {
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultConfig().QuestionCount
	}
	if cfg.Language == "" {
		cfg.Language = DefaultConfig().Language
	}
	return &LLMProvider{provider: provider, config: cfg}
}

// contentOutput is the raw LLM response before validation.
type contentOutput struct {
	Passage   string          `json:"passage"`
	Questions []quiz.Question `json:"questions"`
}

// FetchContent generates one validated content set at the given difficulty.
func (g *LLMProvider) FetchContent(ctx context.Context, d quiz.Difficulty) (*quiz.ContentSet, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeReadingContent)

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	messages := []llm.Message{
		{Role: llm.RoleUser, Content: buildUserMessage(d, g.Recent(), g.config)},
	}
	for attempt := 0; ; attempt++ {
		set, raw, err := g.generate(ctx, messages)
		if err != nil {
			return nil, err
		}

		verr := g.validate(set, d)
		if verr == nil {
			g.remember(set.Passage)
			return set, nil
		}
		if !verr.Retryable || attempt >= g.config.ValidationRetries {
			return nil, verr
		}
		messages = append(messages,
			llm.Message{Role: llm.RoleAssistant, Content: string(raw)},
			llm.Message{Role: llm.RoleUser, Content: rejectionMessage(verr)},
		)
	}
}

func (g *LLMProvider) generate(ctx context.Context, messages []llm.Message) (*quiz.ContentSet, json.RawMessage, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    messages,
		Schema:      ReadingSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw contentOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return &quiz.ContentSet{Passage: raw.Passage, Questions: raw.Questions}, resp.Content, nil
}

func (g *LLMProvider) validate(set *quiz.ContentSet, d quiz.Difficulty) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(set, d); verr != nil {
			return verr
		}
	}
	return nil
}

// Recent returns the openings of recently generated passages, oldest first.
func (g *LLMProvider) Recent() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.recent))
	copy(out, g.recent)
	return out
}

func (g *LLMProvider) remember(passage string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recent = append(g.recent, passageOpening(passage))
	if max := g.config.MaxPriorPassages; max > 0 && len(g.recent) > max {
		g.recent = g.recent[len(g.recent)-max:]
	}
}
