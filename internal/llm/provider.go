package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over the exercise-generation service.
// One Provider instance is bound to one credential; the failover layer
// composes several of them into a single logical Provider.
type Provider interface {
	// Generate sends a prompt and returns structured JSON. When the
	// request carries a Schema, the provider uses its native structured
	// output mechanism and the returned Content is the validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider targets.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the assistant's role and constraints.
	System string

	// Messages is the conversation. Exercise generation is single-turn,
	// so this holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil
	// the Content is returned as raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero means deterministic.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names and defines the JSON structure expected back.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "text-exercise".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response is the service's output.
type Response struct {
	// Content is the generated JSON (schema-validated when a Schema was
	// requested) or raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string
}

// Usage tracks tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
