package grpcserver

// This file enumerates the wire-level request/response shapes for the chat
// ingress RPC. Field names mirror the orchestrator.ChatRequest/ChatResult
// fields the handler translates to/from, so the JSON codec round-trips
// without custom (un)marshaling.

type (
	// ActiveEditorRequest is the wire shape of a request's active_editor
	// field.
	ActiveEditorRequest struct {
		IsEditable    bool                           `json:"is_editable"`
		Filename      string                         `json:"filename"`
		CanonicalPath string                         `json:"canonical_path"`
		Language      string                         `json:"language"`
		Content       string                         `json:"content"`
		Frontmatter   ActiveEditorFrontmatterRequest `json:"frontmatter"`
	}

	// ActiveEditorFrontmatterRequest is the wire shape of
	// active_editor.frontmatter.
	ActiveEditorFrontmatterRequest struct {
		Type         string            `json:"type"`
		Title        string            `json:"title"`
		Author       string            `json:"author"`
		Tags         []string          `json:"tags,omitempty"`
		Status       string            `json:"status"`
		CustomFields map[string]string `json:"custom_fields,omitempty"`
	}

	// PermissionGrantRequest carries the user's decision on a single pending
	// permission gate.
	PermissionGrantRequest struct {
		Permission string `json:"permission"`
		Granted    bool   `json:"granted"`
	}

	// MessageRequest is one turn of prior conversation history.
	MessageRequest struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	// ChatRequest is the wire shape of one inbound chat turn.
	ChatRequest struct {
		UserID          string                  `json:"user_id"`
		ConversationID  string                  `json:"conversation_id"`
		Query           string                  `json:"query"`
		AgentType       string                  `json:"agent_type,omitempty"`
		CursorOffset    int                     `json:"cursor_offset,omitempty"`
		ActiveEditor    *ActiveEditorRequest    `json:"active_editor,omitempty"`
		History         []MessageRequest        `json:"history,omitempty"`
		PermissionGrant *PermissionGrantRequest `json:"permission_grant,omitempty"`
	}

	// ChatResponse is the wire shape of a completed or paused turn.
	ChatResponse struct {
		ThreadID     string         `json:"thread_id"`
		Response     string         `json:"response,omitempty"`
		Interrupted  bool           `json:"interrupted"`
		SelectedNode []string       `json:"selected_node,omitempty"`
		State        map[string]any `json:"state,omitempty"`
	}
)
