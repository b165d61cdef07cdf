package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider sends one prompt to a text-generation backend.
type Provider interface {
	// Generate returns the model output for req. When req.Schema is set the
	// content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the resolved model identifier.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	// System sets the model's role and output rules.
	System string

	// Messages holds the conversation. Quiz content generation is always
	// single-turn, so this is usually one user message.
	Messages []Message

	// Schema constrains the output to JSON of a given shape. Nil means
	// free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "quiz-questions". It doubles as
	// the cache key for the compiled validator.
	Name string

	Description string

	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is the validated JSON document when a Schema was requested,
	// otherwise the raw text bytes.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Text returns Content as trimmed plain text.
func (r *Response) Text() string {
	return strings.TrimSpace(string(r.Content))
}

// Usage reports token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}
