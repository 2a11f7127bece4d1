// Package model defines the provider-agnostic LLM gateway. It models
// messages as a flat {role, content, timestamp} record — the orchestrator
// never needs multimodal parts, only text-in/text-or-JSON-out — and exposes
// a Provider interface that concrete SDKs (Anthropic, OpenAI, Bedrock)
// implement.
package model

import (
	"context"
	"time"
)

// Role is the speaker for a single message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single chat message. A conversation history is an ordered
// sequence of Messages, latest-last.
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// ModelClass lets callers ask for a tier of model without naming a concrete
// provider model ID.
type ModelClass string

const (
	// ModelClassDefault is the balanced, general-purpose tier.
	ModelClassDefault ModelClass = "default"
	// ModelClassSmall is a fast/cheap tier for classification and quick checks
	// (intent classification, quick-answer check, query-type detection).
	ModelClassSmall ModelClass = "small"
	// ModelClassHighReasoning is used for final synthesis and gap analysis.
	ModelClassHighReasoning ModelClass = "high_reasoning"
)

// Request describes a single LLM invocation.
type Request struct {
	// System is the system prompt, if any.
	System string
	// Messages is the conversation history plus the current turn's prompt.
	Messages []Message
	// ModelClass selects a tier when Model is empty; the Gateway resolves it
	// to a concrete provider model ID.
	ModelClass ModelClass
	// Model overrides ModelClass with an explicit provider model ID.
	Model string
	// Temperature controls sampling randomness. Zero means "use the
	// provider/Gateway default for this request kind."
	Temperature float64
	// MaxTokens bounds the completion length. Zero means provider default.
	MaxTokens int
	// JSONSchema, when non-nil, asks the provider/Gateway to return a JSON
	// object validated against this schema. The OpenAI provider switches to
	// JSON-object output when it is set; the Anthropic and Bedrock providers
	// send the request unchanged. No provider adds the schema to the prompt;
	// Gateway.GenerateJSON validates the result.
	JSONSchema []byte
}

// Usage reports token accounting for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response is a single LLM invocation's result.
type Response struct {
	Text  string
	Model string
	Usage Usage
}

// Provider is the minimal surface every concrete LLM SDK adapter implements.
type Provider interface {
	// Name identifies the provider for model-selection/logging purposes
	// (e.g. "anthropic", "openai", "bedrock").
	Name() string
	// Generate issues req and returns the raw text response. If req carries
	// a JSONSchema, callers should use Gateway.GenerateJSON instead, which
	// adds validation and fallback handling; Generate on its own does not
	// validate against JSONSchema.
	Generate(ctx context.Context, req Request) (Response, error)
}
