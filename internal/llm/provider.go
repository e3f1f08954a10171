package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a language model.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the response
	// Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Named is implemented by providers that can report which backend they
// talk to ("anthropic", "openai", ...). Decorators forward it.
type Named interface {
	Name() string
}

// ProviderName returns p's backend name, or its model ID when p does not
// implement Named.
func ProviderName(p Provider) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return p.ModelID()
}

// Request is a single-turn (or short multi-turn) generation request.
type Request struct {
	// System sets the model's role and rules.
	System string

	// Messages is the conversation. Content generation sends one user
	// message, plus the rejected set and a correction note when it
	// regenerates.
	Messages []Message

	// Schema, when set, asks the provider for JSON matching it using the
	// provider's native structured-output mechanism.
	Schema *Schema

	MaxTokens int

	// Temperature in the range 0.0-1.0. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "reading-content".
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model's output for a Request.
type Response struct {
	// Content is the validated JSON object when a Schema was requested,
	// otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
