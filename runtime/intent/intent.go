// Package intent implements the LLM-backed classifier that maps a user's
// message and conversation context onto a target agent and action. It is a
// single schema-validated LLM call: on any parse failure it degrades to a
// fixed chat fallback rather than guessing.
package intent

import (
	"context"

	"github.com/adamsih300u/orchestrator/runtime/model"
)

// ChatFallback is the target agent returned whenever classification cannot
// produce a validated result.
const ChatFallback = "chat"

// Result is the classifier's output.
type Result struct {
	TargetAgent  string  `json:"target_agent"`
	ActionIntent string  `json:"action_intent"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
}

// Context carries everything the classifier conditions on beyond the raw
// user message: continuity hints from shared memory, and the available
// agent names it may select from.
type Context struct {
	PrimaryAgentSelected string
	LastAgent            string
	LastResponse         string
	AvailableAgents      []string
	History              []model.Message
}

const schemaJSON = `{
	"type": "object",
	"required": ["target_agent", "action_intent", "confidence"],
	"properties": {
		"target_agent": {"type": "string"},
		"action_intent": {"type": "string"},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"reasoning": {"type": "string"}
	}
}`

// Classifier wraps a model.Gateway to implement classify(user_message,
// conversation_context) -> {target_agent, action_intent, confidence,
// reasoning}.
type Classifier struct {
	gateway      *model.Gateway
	providerName string
}

// New builds a Classifier over gateway, using providerName (empty selects
// the gateway's default provider).
func New(gateway *model.Gateway, providerName string) *Classifier {
	return &Classifier{gateway: gateway, providerName: providerName}
}

// Classify runs the classification call. Parse or validation failures never
// propagate as errors to the caller: they return the chat fallback with
// zero confidence so the orchestrator always has a usable routing decision.
func (c *Classifier) Classify(ctx context.Context, userMessage string, cctx Context) Result {
	req := model.Request{
		System:     systemPrompt(cctx),
		Messages:   append(append([]model.Message{}, cctx.History...), model.Message{Role: model.RoleUser, Content: userMessage}),
		ModelClass: model.ModelClassSmall,
		JSONSchema: []byte(schemaJSON),
	}

	var out Result
	if err := c.gateway.GenerateJSON(ctx, c.providerName, req, &out); err != nil {
		return fallback()
	}
	if out.TargetAgent == "" {
		return fallback()
	}
	return out
}

func fallback() Result {
	return Result{TargetAgent: ChatFallback, ActionIntent: "respond", Confidence: 0, Reasoning: "classification unavailable"}
}

func systemPrompt(cctx Context) string {
	prompt := "You route a user's message to the correct specialized agent. " +
		"Respond with a single JSON object matching the given schema: " +
		"target_agent, action_intent, confidence (0-1), reasoning. " +
		"Prefer continuity: if the prior agent can still satisfy the request, keep routing to it."
	if cctx.PrimaryAgentSelected != "" {
		prompt += "\nPrimary agent from a prior turn: " + cctx.PrimaryAgentSelected
	}
	if cctx.LastAgent != "" {
		prompt += "\nLast agent that responded: " + cctx.LastAgent
	}
	if cctx.LastResponse != "" {
		prompt += "\nLast assistant response: " + cctx.LastResponse
	}
	if len(cctx.AvailableAgents) > 0 {
		prompt += "\nAvailable agents: "
		for i, a := range cctx.AvailableAgents {
			if i > 0 {
				prompt += ", "
			}
			prompt += a
		}
	}
	return prompt
}
