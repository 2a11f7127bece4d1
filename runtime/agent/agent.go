// Package agent defines the uniform per-agent contract every workflow in
// this service implements: a flat registry of named agents, each a pure
// function of (query, metadata, history) to a result, with no class
// hierarchy.
package agent

import (
	"context"
	"time"

	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/sharedmemory"
)

// TaskStatus reports the outcome of a turn.
type TaskStatus string

const (
	TaskStatusComplete           TaskStatus = "complete"
	TaskStatusPermissionRequired TaskStatus = "permission_required"
	TaskStatusError              TaskStatus = "error"
)

// Metadata is the per-turn context every agent receives: identifiers, the
// persona, and the shared-memory state carried across turns.
type Metadata struct {
	ConversationID string
	UserID         string
	Persona        Persona
	SharedMemory   *sharedmemory.Memory
}

// Persona carries the assistant's name, tone, and timezone for a turn.
type Persona struct {
	AIName   string
	Style    string
	Bias     string
	Timezone string
}

// DefaultPersona is used whenever a turn's request omits one.
func DefaultPersona() Persona {
	return Persona{AIName: "Codex", Style: "professional", Bias: "neutral", Timezone: "UTC"}
}

// Result is the uniform shape every agent returns.
type Result struct {
	Response     string
	TaskStatus   TaskStatus
	AgentResults map[string]any
}

// Ident is the strong type for an agent's registry name (e.g. "research",
// "org", "project_content"), kept distinct from free-form strings so maps
// and dispatch tables can't accidentally mix it with user text.
type Ident string

// Agent is the flat contract every workflow implements.
type Agent interface {
	Run(ctx context.Context, query string, md Metadata, history []model.Message) (Result, error)
}

// AgentFunc adapts a plain function to the Agent interface.
type AgentFunc func(ctx context.Context, query string, md Metadata, history []model.Message) (Result, error)

// Run implements Agent.
func (f AgentFunc) Run(ctx context.Context, query string, md Metadata, history []model.Message) (Result, error) {
	return f(ctx, query, md, history)
}

// Registry is the flat name→Agent table the orchestrator dispatches
// through. No class hierarchy: adding an agent is one map entry.
type Registry struct {
	agents map[Ident]Agent
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{agents: make(map[Ident]Agent)}
}

// Register adds or replaces the agent bound to name.
func (r *Registry) Register(name Ident, a Agent) {
	r.agents[name] = a
}

// Lookup returns the agent bound to name, or false if none is registered.
func (r *Registry) Lookup(name Ident) (Agent, bool) {
	a, ok := r.agents[name]
	return a, ok
}

// Names returns the registered agent identifiers in no particular order.
func (r *Registry) Names() []Ident {
	out := make([]Ident, 0, len(r.agents))
	for name := range r.agents {
		out = append(out, name)
	}
	return out
}

// ThreadID derives the checkpoint-store key from (user_id, conversation_id).
func ThreadID(userID, conversationID string) string {
	return userID + ":" + conversationID
}

// DatetimeContext renders the current time in md.Persona.Timezone (defaulting
// to UTC) for injection into LLM prompts that need "today's date" grounding.
func DatetimeContext(md Metadata, now time.Time) string {
	loc, err := time.LoadLocation(md.Persona.Timezone)
	if err != nil || md.Persona.Timezone == "" {
		loc = time.UTC
	}
	return now.In(loc).Format("Monday, 2006-01-02 15:04 MST")
}

// MergeHistory appends a new user/assistant exchange onto prior history,
// preserving order (the orchestrator is the only writer of conversation
// history; agents only read it).
func MergeHistory(history []model.Message, userQuery, assistantResponse string, now time.Time) []model.Message {
	out := make([]model.Message, 0, len(history)+2)
	out = append(out, history...)
	out = append(out,
		model.Message{Role: model.RoleUser, Content: userQuery, Timestamp: now},
		model.Message{Role: model.RoleAssistant, Content: assistantResponse, Timestamp: now},
	)
	return out
}

// SelectModel resolves which ModelClass a node should request from the LLM
// Gateway. Agents needing a specific tier call this instead of hardcoding a
// class inline, keeping tier policy in one place.
func SelectModel(highReasoning bool, small bool) model.ModelClass {
	switch {
	case highReasoning:
		return model.ModelClassHighReasoning
	case small:
		return model.ModelClassSmall
	default:
		return model.ModelClassDefault
	}
}
