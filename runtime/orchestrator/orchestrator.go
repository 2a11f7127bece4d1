// Package orchestrator implements the top-level chat entry point: it loads
// a thread's shared memory, extracts the active editor from the request,
// classifies intent to pick a target agent graph (or honors an explicit
// agent_type), resolves a paused interrupt-before node back into a resume,
// and runs the selected runtime/workflow.Graph to completion or the next
// interrupt.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/adamsih300u/orchestrator/runtime/checkpoint"
	"github.com/adamsih300u/orchestrator/runtime/intent"
	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/research"
	"github.com/adamsih300u/orchestrator/runtime/sharedmemory"
	"github.com/adamsih300u/orchestrator/runtime/telemetry"
	"github.com/adamsih300u/orchestrator/runtime/workflow"
)

// Service is the orchestrator's chat entry point: it owns no per-turn
// state itself, only the compiled graphs and collaborators every turn
// needs.
type Service struct {
	Checkpointer checkpoint.Store
	Classifier   *intent.Classifier
	Agents       map[string]*workflow.Graph
	// DefaultAgent is used when classification yields a target agent not
	// present in Agents.
	DefaultAgent string
	// Logger receives agent-alias fallback warnings. A nil Logger uses a
	// no-op implementation.
	Logger telemetry.Logger
}

func (s *Service) logger() telemetry.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return telemetry.NewNoopLogger()
}

// NewService builds a Service from its compiled agent graphs. defaultAgent
// must be a key of agents.
func NewService(checkpointer checkpoint.Store, classifier *intent.Classifier, agents map[string]*workflow.Graph, defaultAgent string) *Service {
	return &Service{
		Checkpointer: checkpointer,
		Classifier:   classifier,
		Agents:       agents,
		DefaultAgent: defaultAgent,
	}
}

// ChatRequest is one inbound turn.
type ChatRequest struct {
	UserID         string
	ConversationID string
	Query          string
	// AgentType is "auto" (classify) or an explicit agent name that skips
	// classification entirely.
	AgentType       string
	CursorOffset    int
	ActiveEditor    *ActiveEditorInput
	History         []model.Message
	PermissionGrant *PermissionGrantInput
}

// ActiveEditorInput is the wire shape of the request's active_editor field,
// ahead of being folded into sharedmemory.ActiveEditor.
type ActiveEditorInput struct {
	IsEditable    bool
	Filename      string
	CanonicalPath string
	Language      string
	Content       string
	Frontmatter   ActiveEditorFrontmatterInput
}

// ActiveEditorFrontmatterInput is the wire shape of active_editor.frontmatter.
type ActiveEditorFrontmatterInput struct {
	Type         string
	Title        string
	Author       string
	Tags         []string
	Status       string
	CustomFields map[string]string
}

// PermissionGrantInput carries a user's decision on a single pending
// permission gate for this turn.
type PermissionGrantInput struct {
	Permission string
	Granted    bool
}

// ChatResult is what a completed or paused turn returns to the caller.
type ChatResult struct {
	ThreadID     string
	FinalState   workflow.State
	Interrupted  bool
	SelectedNode []string
}

// threadID derives the checkpoint thread key from a user/conversation pair.
func threadID(userID, conversationID string) string {
	return userID + ":" + conversationID
}

// StreamChat runs one turn of the chat loop: it resolves the target agent,
// builds the turn's input state, and invokes that agent's graph from the
// thread's latest checkpoint (or its entry node on a fresh thread).
func (s *Service) StreamChat(ctx context.Context, req ChatRequest) (ChatResult, error) {
	tid := threadID(req.UserID, req.ConversationID)
	cfg := workflow.Config{ThreadID: tid}

	var priorCheckpoint checkpoint.Checkpoint
	var priorMemory *sharedmemory.Memory
	if cp, err := s.Checkpointer.Latest(ctx, tid); err == nil {
		priorCheckpoint = cp
		priorMemory, _ = cp.Values["shared_memory"].(*sharedmemory.Memory)
	}

	if result, handled, err := s.resolvePendingPermission(ctx, tid, priorCheckpoint, priorMemory, &req); handled {
		return result, err
	}

	targetAgent := s.resolveAgent(ctx, req, priorMemory)
	graph, ok := s.Agents[targetAgent]
	if !ok {
		graph, ok = s.Agents[s.DefaultAgent]
		if !ok {
			return ChatResult{}, fmt.Errorf("orchestrator: no graph registered for agent %q or default %q", targetAgent, s.DefaultAgent)
		}
	}

	input := s.buildInput(req, priorMemory, priorCheckpoint)

	final, err := graph.Invoke(ctx, cfg, input)
	if err != nil {
		return ChatResult{}, err
	}

	cp, err := graph.GetState(ctx, cfg)
	if err != nil {
		return ChatResult{}, err
	}

	return ChatResult{
		ThreadID:     tid,
		FinalState:   final,
		Interrupted:  len(cp.Next) > 0,
		SelectedNode: cp.Next,
	}, nil
}

// resolvePendingPermission implements HITL resume semantics for a thread
// paused with shared_memory.web_search_permission == pending: a clear
// affirmation grants the permission (preserving every other shared-memory
// key, per sharedmemory.Merge) and pins the target agent back to the one
// that owns the paused checkpoint so the turn actually resumes it rather
// than being reclassified onto a different graph; a clear denial cancels
// the pause outright so the next turn starts fresh; anything else falls
// through and this turn is treated normally.
func (s *Service) resolvePendingPermission(ctx context.Context, tid string, prior checkpoint.Checkpoint, priorMemory *sharedmemory.Memory, req *ChatRequest) (ChatResult, bool, error) {
	pending := len(prior.Next) > 0 && priorMemory != nil && priorMemory.WebSearchPermission == sharedmemory.PermissionPending
	if !pending || req.PermissionGrant != nil {
		return ChatResult{}, false, nil
	}

	if isClearDenial(req.Query) {
		result, err := s.cancelPausedWorkflow(ctx, tid, prior, priorMemory)
		return result, true, err
	}

	if isClearAffirmation(req.Query) {
		req.PermissionGrant = &PermissionGrantInput{Permission: "web_search_permission", Granted: true}
		if (req.AgentType == "" || req.AgentType == "auto") && priorMemory.PrimaryAgentSelected != "" {
			req.AgentType = priorMemory.PrimaryAgentSelected
		}
	}

	return ChatResult{}, false, nil
}

// cancelPausedWorkflow resets a pending web-search permission to unset and
// clears the checkpoint's Next, so the next turn on this thread resumes
// from the graph's entry node instead of the stale interrupt.
func (s *Service) cancelPausedWorkflow(ctx context.Context, tid string, prior checkpoint.Checkpoint, priorMemory *sharedmemory.Memory) (ChatResult, error) {
	cancelled := priorMemory.Clone()
	cancelled.WebSearchPermission = sharedmemory.PermissionUnset

	values := make(map[string]any, len(prior.Values)+2)
	for k, v := range prior.Values {
		values[k] = v
	}
	values["shared_memory"] = cancelled
	values["final_response"] = "Okay, I won't search the web for this one — let me know if you change your mind."

	if _, err := s.Checkpointer.Put(ctx, tid, values, nil); err != nil {
		return ChatResult{}, err
	}

	return ChatResult{
		ThreadID:    tid,
		FinalState:  workflow.State(values),
		Interrupted: false,
	}, nil
}

// agentAliases remaps agent types this orchestrator has not migrated yet
// onto the closest already-implemented agent, mirroring the original
// service's agent_mapping table. A secondary table, not scattered
// conditionals.
var agentAliases = map[string]string{
	"podcast_script_agent":   "chat",
	"substack_agent":         "chat",
	"org_inbox_agent":        "chat",
	"org_project_agent":      "chat",
	"proofreading_agent":     "chat",
	"rss_agent":              "chat",
	"image_generation_agent": "chat",
	"website_crawler_agent":  "research",
	"pipeline_agent":         "data_formatting",
}

// resolveAgent honors an explicit, non-"auto" agent_type, otherwise
// classifies intent using the thread's shared-memory continuity hints. The
// result always passes through the agent-alias map before being returned.
func (s *Service) resolveAgent(ctx context.Context, req ChatRequest, priorMemory *sharedmemory.Memory) string {
	var target string
	if req.AgentType != "" && req.AgentType != "auto" {
		target = req.AgentType
	} else {
		cctx := intent.Context{AvailableAgents: agentNames(s.Agents), History: req.History}
		if priorMemory != nil {
			cctx.PrimaryAgentSelected = priorMemory.PrimaryAgentSelected
			cctx.LastAgent = priorMemory.LastAgent
			cctx.LastResponse = priorMemory.LastResponse
		}
		target = s.Classifier.Classify(ctx, req.Query, cctx).TargetAgent
	}
	return s.applyAgentAlias(ctx, target)
}

// applyAgentAlias collapses a not-yet-migrated agent type onto its alias.
// A type that is neither registered nor aliased falls back to DefaultAgent
// with a logged warning.
func (s *Service) applyAgentAlias(ctx context.Context, agentType string) string {
	if alias, ok := agentAliases[agentType]; ok {
		return alias
	}
	if _, ok := s.Agents[agentType]; ok {
		return agentType
	}
	s.logger().Warn(ctx, "unknown agent type, falling back to default", "agent_type", agentType, "default", s.DefaultAgent)
	return s.DefaultAgent
}

// permissionAffirmTokens/permissionAffirmPhrases and
// permissionDenyTokens/permissionDenyPhrases implement the §4.2.5 HITL
// resume heuristic: a short reply built entirely from the relevant
// vocabulary, or containing one of the longer phrases.
var permissionAffirmTokens = map[string]bool{
	"yes": true, "y": true, "yeah": true, "yep": true, "sure": true,
	"ok": true, "okay": true, "proceed": true, "confirm": true, "go": true,
}

var permissionAffirmPhrases = []string{"go ahead", "do it", "please proceed"}

var permissionDenyTokens = map[string]bool{
	"no": true, "n": true, "nope": true, "nah": true, "cancel": true,
	"stop": true, "negative": true,
}

var permissionDenyPhrases = []string{"never mind", "don't", "do not", "no thanks"}

func isClearAffirmation(message string) bool {
	return matchesShortReply(message, permissionAffirmTokens, permissionAffirmPhrases)
}

func isClearDenial(message string) bool {
	return matchesShortReply(message, permissionDenyTokens, permissionDenyPhrases)
}

func matchesShortReply(message string, tokens map[string]bool, phrases []string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	words := strings.Fields(lower)
	if len(words) == 0 || len(words) > 5 {
		return false
	}
	for _, w := range words {
		if !tokens[strings.Trim(w, ".,!?")] {
			return false
		}
	}
	return true
}

func agentNames(agents map[string]*workflow.Graph) []string {
	names := make([]string, 0, len(agents))
	for name := range agents {
		names = append(names, name)
	}
	return names
}

// buildInput assembles the turn's State input. Agent graphs disagree on
// the field name for the user's message (org reads "user_message" for
// intent classification and "query" for cursor context; research reads
// only "query"), so both keys carry the same value.
//
// research.PrepareTurnInput applies the quick-answer follow-up heuristic
// against the prior checkpoint: if the previous turn offered a quick answer
// and this message is a short affirmation, skip_quick_answer is set so the
// research graph re-invokes past quick_answer_check into the full pipeline.
// Other graphs simply never read that key.
//
// Any active_editor/permission_grant carried on this turn's request must be
// merged against the thread's persisted shared memory, not set as a raw
// replacement: the graph's own State merge is a per-key overwrite, so an
// unmerged patch here would wipe continuity fields (last agent, pending
// project capture, previously granted permissions) the moment this request
// carries either field.
func (s *Service) buildInput(req ChatRequest, priorMemory *sharedmemory.Memory, prior checkpoint.Checkpoint) workflow.State {
	state := workflow.State{
		"user_id":       req.UserID,
		"query":         req.Query,
		"user_message":  req.Query,
		"cursor_offset": req.CursorOffset,
	}

	if skip, ok := research.PrepareTurnInput(prior, req.UserID, req.Query)["skip_quick_answer"]; ok {
		state["skip_quick_answer"] = skip
	}

	if req.ActiveEditor == nil && req.PermissionGrant == nil {
		return state
	}

	merged := priorMemory
	if req.ActiveEditor != nil {
		merged = sharedmemory.Merge(merged, activeEditorPatch(req.ActiveEditor))
	}
	if req.PermissionGrant != nil {
		merged = sharedmemory.Merge(merged, permissionPatch(*req.PermissionGrant))
	}
	state["shared_memory"] = merged
	return state
}

func activeEditorPatch(in *ActiveEditorInput) *sharedmemory.Memory {
	customFields := in.Frontmatter.CustomFields
	if customFields == nil {
		customFields = map[string]string{}
	}
	editor := &sharedmemory.ActiveEditor{
		IsEditable:    in.IsEditable,
		Filename:      in.Filename,
		CanonicalPath: in.CanonicalPath,
		Language:      in.Language,
		Content:       in.Content,
		Frontmatter: sharedmemory.ActiveEditorFrontmatter{
			Type:             in.Frontmatter.Type,
			Title:            in.Frontmatter.Title,
			Author:           in.Frontmatter.Author,
			Tags:             in.Frontmatter.Tags,
			Status:           in.Frontmatter.Status,
			CustomFields:     customFields,
			ParsedListFields: sharedmemory.ParseCustomFieldLists(customFields),
		},
	}
	return &sharedmemory.Memory{ActiveEditor: editor}
}

func permissionPatch(grant PermissionGrantInput) *sharedmemory.Memory {
	state := sharedmemory.PermissionState(sharedmemory.PermissionUnset)
	if grant.Granted {
		state = sharedmemory.PermissionGranted
	}
	mem := &sharedmemory.Memory{}
	switch grant.Permission {
	case "web_search_permission":
		mem.WebSearchPermission = state
	case "web_crawl_permission":
		mem.WebCrawlPermission = state
	case "file_write_permission":
		mem.FileWritePermission = state
	case "external_api_permission":
		mem.ExternalAPIPermission = state
	}
	return mem
}
