// Package sharedmemory implements the cross-turn mutable map carried in
// every workflow state. Recognized keys are first-class fields rather than
// a free-form map; an Extensions map keeps room for forward compatibility
// with keys agents add without a core schema change.
package sharedmemory

// PermissionState is the tri-state lifecycle of a gated capability
// (web_search, web_crawl, file_write, external_api).
type PermissionState string

const (
	// PermissionUnset means the permission key is absent from shared memory.
	PermissionUnset PermissionState = ""
	// PermissionPending means a prior turn asked for approval and is waiting.
	PermissionPending PermissionState = "pending"
	// PermissionGranted means the user approved the capability.
	PermissionGranted PermissionState = "granted"
)

// ActiveEditorFrontmatter mirrors the document frontmatter attached to the
// user's currently open editor.
type ActiveEditorFrontmatter struct {
	Type        string
	Title       string
	Author      string
	Tags        []string
	Status      string
	// CustomFields holds frontmatter extension fields verbatim as received.
	CustomFields map[string]string
	// ParsedListFields holds CustomFields entries that were recognized as
	// stringified lists (Python-literal, JSON, or YAML) and parsed back into
	// string slices. Keys here shadow the raw string in CustomFields for
	// list-typed references (files, components, protocols, schematics,
	// specifications).
	ParsedListFields map[string][]string
}

// ActiveEditor is a structured record of the document the user currently has
// open.
type ActiveEditor struct {
	IsEditable    bool
	Filename      string
	CanonicalPath string
	Language      string
	Content       string
	Frontmatter   ActiveEditorFrontmatter
}

// PendingProjectCapture is the org-agent human-in-the-loop state machine
// snapshot, persisted in shared memory across turns until committed or
// cancelled.
type PendingProjectCapture struct {
	Title                string
	Description          string
	TargetDate           string
	Tags                 []string
	InitialTasks         []string
	MissingFields        []string
	PreviewBlock         string
	AwaitingConfirmation bool
}

// Memory is the strongly-typed shared-memory record carried in every
// workflow state and persisted at each checkpoint.
type Memory struct {
	PrimaryAgentSelected string
	LastAgent            string
	LastResponse         string

	ActiveEditor *ActiveEditor

	WebSearchPermission   PermissionState
	WebCrawlPermission    PermissionState
	FileWritePermission   PermissionState
	ExternalAPIPermission PermissionState

	PendingProjectCapture *PendingProjectCapture

	PreviousToolsUsed []string
	ToolAnalysis      map[string]any
	EditorPreference  string

	// Extensions holds forward-compatible keys not yet promoted to first-class
	// fields. Agents may read/write arbitrary entries here.
	Extensions map[string]any
}

// New returns an empty Memory with its maps initialized.
func New() *Memory {
	return &Memory{
		ToolAnalysis: map[string]any{},
		Extensions:   map[string]any{},
	}
}

// Clone returns a deep-enough copy of m suitable for safe mutation by a
// concurrent workflow branch: parallel branches never mutate the same state
// keys, but each branch should start from an independent view.
func (m *Memory) Clone() *Memory {
	if m == nil {
		return New()
	}
	out := *m
	if m.ActiveEditor != nil {
		ed := *m.ActiveEditor
		out.ActiveEditor = &ed
	}
	if m.PendingProjectCapture != nil {
		pc := *m.PendingProjectCapture
		out.PendingProjectCapture = &pc
	}
	out.PreviousToolsUsed = append([]string(nil), m.PreviousToolsUsed...)
	out.ToolAnalysis = cloneAnyMap(m.ToolAnalysis)
	out.Extensions = cloneAnyMap(m.Extensions)
	return &out
}

func cloneAnyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Merge applies key-wise last-write-wins, except that a permission key
// transitioning from granted to anything else is rejected (non-regression),
// and PendingProjectCapture is only cleared when incoming is the
// ClearPendingProjectCapture marker (a nil value in incoming leaves it as is).
func Merge(base, incoming *Memory) *Memory {
	if base == nil {
		base = New()
	}
	if incoming == nil {
		return base.Clone()
	}
	out := base.Clone()

	if incoming.PrimaryAgentSelected != "" {
		out.PrimaryAgentSelected = incoming.PrimaryAgentSelected
	}
	if incoming.LastAgent != "" {
		out.LastAgent = incoming.LastAgent
	}
	if incoming.LastResponse != "" {
		out.LastResponse = incoming.LastResponse
	}
	if incoming.ActiveEditor != nil {
		out.ActiveEditor = incoming.ActiveEditor
	}

	out.WebSearchPermission = mergePermission(out.WebSearchPermission, incoming.WebSearchPermission)
	out.WebCrawlPermission = mergePermission(out.WebCrawlPermission, incoming.WebCrawlPermission)
	out.FileWritePermission = mergePermission(out.FileWritePermission, incoming.FileWritePermission)
	out.ExternalAPIPermission = mergePermission(out.ExternalAPIPermission, incoming.ExternalAPIPermission)

	// PendingProjectCapture is cleared only by the org workflow's explicit
	// commit/cancel transition, represented by incoming carrying the
	// ClearPendingProjectCapture extension marker.
	if incoming.PendingProjectCapture != nil {
		out.PendingProjectCapture = incoming.PendingProjectCapture
	} else if incoming.Extensions != nil {
		if _, clear := incoming.Extensions[clearPendingCaptureKey]; clear {
			out.PendingProjectCapture = nil
		}
	}

	if len(incoming.PreviousToolsUsed) > 0 {
		out.PreviousToolsUsed = append(append([]string(nil), out.PreviousToolsUsed...), incoming.PreviousToolsUsed...)
	}
	for k, v := range incoming.ToolAnalysis {
		out.ToolAnalysis[k] = v
	}
	if incoming.EditorPreference != "" {
		out.EditorPreference = incoming.EditorPreference
	}
	for k, v := range incoming.Extensions {
		if k == clearPendingCaptureKey {
			continue
		}
		out.Extensions[k] = v
	}
	return out
}

const clearPendingCaptureKey = "__clear_pending_project_capture__"

// ClearPendingProjectCapture returns a Memory delta that, when merged, clears
// PendingProjectCapture, removed on commit or cancel.
func ClearPendingProjectCapture() *Memory {
	return &Memory{Extensions: map[string]any{clearPendingCaptureKey: true}}
}

// mergePermission enforces permission non-regression: a permission that is
// already granted is never silently reverted to pending or unset by a
// stale incoming value.
func mergePermission(current, incoming PermissionState) PermissionState {
	if incoming == PermissionUnset {
		return current
	}
	if current == PermissionGranted && incoming == PermissionPending {
		return current
	}
	return incoming
}
