// Package org implements the org-mode inbox and project workflow: intent
// classification across synthesis, project-capture, and inbox-management
// requests; context-aware filtering of org-mode file links in the active
// editor; cross-document synthesis; direct inbox-management RPC dispatch;
// and a human-in-the-loop project-capture state machine persisted in shared
// memory across turns. Built as a runtime/workflow.Graph.
package org

import (
	"context"

	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/toolclient"
)

// LinkRef is an org-mode [[file:...][...]] link detected in editor content,
// carrying its source position so context-aware filtering can reason about
// which heading subtree it belongs to.
type LinkRef struct {
	FilePath      string
	Description   string
	Heading       string
	Position      int
	EndPosition   int
	ContextReason string
}

// ReferencedDoc is a link resolved and loaded for the synthesis path.
type ReferencedDoc struct {
	FilePath          string
	Description       string
	Heading           string
	DocumentID        string
	Filename          string
	Content           string
	DocType           string
	ProjectAssessment string
}

// AddItemIntent is the LLM-produced strictly-typed shape for an inbox "add"
// request.
type AddItemIntent struct {
	Title                 string            `json:"title"`
	EntryKind             string            `json:"entry_kind"`
	Schedule              *string           `json:"schedule"`
	Repeater              *string           `json:"repeater"`
	SuggestedTags         []string          `json:"suggested_tags"`
	ContactProperties     map[string]string `json:"contact_properties"`
	ClarificationNeeded   bool              `json:"clarification_needed"`
	ClarificationQuestion string            `json:"clarification_question"`
	AssistantConfirmation string            `json:"assistant_confirmation"`
}

const addItemSchema = `{
	"type": "object",
	"required": ["title", "entry_kind"],
	"properties": {
		"title": {"type": "string"},
		"entry_kind": {"type": "string", "enum": ["todo", "event", "contact", "checkbox"]},
		"schedule": {"type": ["string", "null"]},
		"repeater": {"type": ["string", "null"]},
		"suggested_tags": {"type": "array", "items": {"type": "string"}, "maxItems": 3},
		"contact_properties": {"type": ["object", "null"]},
		"clarification_needed": {"type": "boolean"},
		"clarification_question": {"type": "string"},
		"assistant_confirmation": {"type": "string"}
	}
}`

const enrichSchema = `{
	"type": "object",
	"properties": {
		"description": {"type": "string"},
		"initial_tasks": {"type": "array", "items": {"type": "string"}, "maxItems": 5}
	}
}`

// Deps bundles the collaborators every org node needs.
type Deps struct {
	Gateway      *model.Gateway
	ProviderName string
	Tools        toolclient.ToolClient
	// ProjectAssessor requests an assessment of a referenced project document
	// from the project-oriented agent; nil disables enrichment and the
	// synthesis context falls back to "Assessment unavailable."
	ProjectAssessor func(ctx context.Context, documentID string) (string, error)
}

func trim(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
