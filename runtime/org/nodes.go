package org

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/sharedmemory"
	"github.com/adamsih300u/orchestrator/runtime/toolclient"
	"github.com/adamsih300u/orchestrator/runtime/workflow"
)

func str(state workflow.State, key string) string {
	v, _ := state[key].(string)
	return v
}

func userID(state workflow.State) string {
	return str(state, "user_id")
}

// clonePendingCapture copies the struct so runProjectCapture can mutate it
// in place without reaching back through an earlier checkpoint's shared
// memory, which stores the same pointer until a patch replaces it.
func clonePendingCapture(p *sharedmemory.PendingProjectCapture) *sharedmemory.PendingProjectCapture {
	if p == nil {
		return nil
	}
	c := *p
	c.Tags = append([]string(nil), p.Tags...)
	c.InitialTasks = append([]string(nil), p.InitialTasks...)
	c.MissingFields = append([]string(nil), p.MissingFields...)
	return &c
}

// prepareContext extracts the user message and, if an editor is active,
// detects and context-filters its org-mode file links.
func prepareContext(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		query := str(state, "query")
		mem := sharedMemoryOf(state)

		var links []LinkRef
		if mem.ActiveEditor != nil && mem.ActiveEditor.Content != "" {
			all := detectLinks(mem.ActiveEditor.Content)
			cursor, _ := state["cursor_offset"].(int)
			if cursor == 0 {
				cursor = -1
			}
			links = filterLinksByContext(all, mem.ActiveEditor.Content, cursor, query)
		}

		return workflow.State{"user_message": query, "detected_links": links}, nil
	}
}

// analyzeIntentNode classifies the turn into synthesis, project_capture, or
// a management sub-operation. While a project capture is pending, every
// turn continues that capture.
func analyzeIntentNode() workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		if sharedMemoryOf(state).PendingProjectCapture != nil {
			return workflow.State{"intent_type": string(IntentProjectCapture), "management_op": ""}, nil
		}
		links, _ := state["detected_links"].([]LinkRef)
		intentType, op := classifyIntent(str(state, "user_message"), links)
		return workflow.State{"intent_type": string(intentType), "management_op": string(op)}, nil
	}
}

func routeFromIntent(state workflow.State) string {
	if str(state, "intent_type") == string(IntentSynthesis) {
		return "resolve_references"
	}
	return "execute_command"
}

// resolveReferences loads every kept link's document content, requesting a
// project assessment for any link whose inferred type is "project".
func resolveReferences(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		links, _ := state["detected_links"].([]LinkRef)
		if len(links) == 0 {
			return workflow.State{"referenced_docs": []ReferencedDoc{}}, nil
		}
		uid := userID(state)
		docs := make([]ReferencedDoc, 0, len(links))
		for _, link := range links {
			found, err := deps.Tools.FindDocumentByPath(ctx, toolclient.FindDocumentByPathRequest{
				FilePath: link.FilePath, UserID: uid,
			})
			if err != nil || found == nil || !found.Found {
				continue
			}
			contentResp, err := deps.Tools.GetDocumentContent(ctx, toolclient.GetDocumentContentRequest{
				DocumentID: found.DocumentID, UserID: uid,
			})
			if err != nil || contentResp == nil {
				continue
			}
			doc := ReferencedDoc{
				FilePath:    link.FilePath,
				Description: link.Description,
				Heading:     link.Heading,
				DocumentID:  found.DocumentID,
				Filename:    found.Filename,
				Content:     contentResp.Content,
				DocType:     inferDocumentType(found.Filename),
			}
			if doc.DocType == "project" {
				if deps.ProjectAssessor != nil {
					assessment, err := deps.ProjectAssessor(ctx, doc.DocumentID)
					if err == nil {
						doc.ProjectAssessment = assessment
					} else {
						doc.ProjectAssessment = "Assessment unavailable."
					}
				} else {
					doc.ProjectAssessment = "Assessment unavailable."
				}
			}
			docs = append(docs, doc)
		}
		return workflow.State{"referenced_docs": docs}, nil
	}
}

// synthesizeAnalysis combines up to 2000 chars of the primary editor and up
// to 2000 chars per referenced document, plus any project assessments, into
// one LLM synthesis call.
func synthesizeAnalysis(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		mem := sharedMemoryOf(state)
		var b strings.Builder
		primaryName, primaryContent := "current file", ""
		if mem.ActiveEditor != nil {
			primaryContent = mem.ActiveEditor.Content
			if mem.ActiveEditor.Filename != "" {
				primaryName = mem.ActiveEditor.Filename
			}
		}
		fmt.Fprintf(&b, "=== PRIMARY ORG FILE: %s ===\n%s\n", primaryName, trim(primaryContent, 2000))

		docs, _ := state["referenced_docs"].([]ReferencedDoc)
		for _, d := range docs {
			fmt.Fprintf(&b, "\n=== REFERENCED %s FILE: %s ===\n%s\n", strings.ToUpper(d.DocType), d.Filename, trim(d.Content, 2000))
			if d.DocType == "project" && d.ProjectAssessment != "" {
				fmt.Fprintf(&b, "\n=== PROJECT ASSESSMENT ===\n%s\n", trim(d.ProjectAssessment, 1500))
			}
		}

		req := model.Request{
			System: "Analyze the user's query across the primary org file and all referenced " +
				"documents, synthesizing information from every one. Identify relationships between " +
				"documents and cite sources when relevant.",
			Messages:    []model.Message{{Role: model.RoleUser, Content: "USER QUERY: " + str(state, "user_message") + "\n\n" + b.String()}},
			ModelClass:  model.ModelClassHighReasoning,
			Temperature: 0.7,
		}
		resp, err := deps.Gateway.GenerateText(ctx, deps.ProviderName, req)
		if err != nil {
			resp = "I was unable to synthesize an analysis across the referenced documents."
		}
		out := withSharedMemoryPatch(state, &sharedmemory.Memory{PrimaryAgentSelected: "org_agent"})
		out["final_response"] = resp
		out["task_status"] = "complete"
		return out, nil
	}
}

// executeOrgCommand dispatches to the project-capture state machine or a
// direct inbox-management RPC, depending on intent_type.
func executeOrgCommand(deps Deps) workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		if str(state, "intent_type") == string(IntentProjectCapture) {
			return runProjectCapture(ctx, deps, state)
		}

		uid := userID(state)
		message := str(state, "user_message")
		var response string
		var err error
		switch ManagementOp(str(state, "management_op")) {
		case OpAdd:
			response, err = handleAdd(ctx, deps, uid, message)
		case OpToggle:
			response, err = handleToggle(ctx, deps, uid, message)
		case OpUpdate:
			response, err = handleUpdate(ctx, deps, uid, message)
		case OpSchedule:
			response, err = handleSchedule(ctx, deps, uid, message)
		case OpArchiveDone:
			response, err = handleArchiveDone(ctx, deps, uid)
		default:
			response, err = handleList(ctx, deps, uid)
		}
		if err != nil {
			return workflow.State{"final_response": "Org operation failed: " + err.Error(), "task_status": "error"}, nil
		}
		out := withSharedMemoryPatch(state, &sharedmemory.Memory{PrimaryAgentSelected: "org_agent"})
		out["final_response"] = response
		out["task_status"] = "complete"
		return out, nil
	}
}

// runProjectCapture implements the gathering → awaiting_confirmation →
// (committed | cancelled) state machine stored in shared memory's
// pending_project_capture.
func runProjectCapture(ctx context.Context, deps Deps, state workflow.State) (workflow.State, error) {
	mem := sharedMemoryOf(state)
	message := str(state, "user_message")
	uid := userID(state)
	pending := clonePendingCapture(mem.PendingProjectCapture)

	if pending != nil && !pending.AwaitingConfirmation {
		mergeUserDetailsIntoPending(pending, message)
		missing := computeMissingFields(pending)
		if len(missing) == 0 {
			pending.PreviewBlock = buildProjectBlockPreview(pending, time.Now())
			pending.AwaitingConfirmation = true
			out := withSharedMemoryPatch(state, &sharedmemory.Memory{PendingProjectCapture: pending})
			out["final_response"] = buildPreviewMessage(pending.PreviewBlock)
			out["task_status"] = "permission_required"
			return out, nil
		}
		pending.MissingFields = missing
		out := withSharedMemoryPatch(state, &sharedmemory.Memory{PendingProjectCapture: pending})
		out["final_response"] = "To capture this project, please provide: " + strings.Join(missing, ", ") + ".\n" + clarificationQuestion()
		out["task_status"] = "permission_required"
		return out, nil
	}

	if pending != nil && pending.AwaitingConfirmation {
		switch {
		case isConfirmation(message):
			resp, err := deps.Tools.AppendOrgInboxText(ctx, toolclient.AppendOrgInboxTextRequest{
				UserID: uid, Text: pending.PreviewBlock,
			})
			out := withSharedMemoryPatch(state, sharedmemory.ClearPendingProjectCapture())
			if err != nil || resp == nil || !resp.Success {
				out["final_response"] = "Failed to write the project to inbox.org."
				out["task_status"] = "error"
				return out, nil
			}
			out["final_response"] = "Project added to inbox.org."
			out["task_status"] = "complete"
			return out, nil
		case isCancellation(message):
			out := withSharedMemoryPatch(state, sharedmemory.ClearPendingProjectCapture())
			out["final_response"] = "Project capture cancelled."
			out["task_status"] = "complete"
			return out, nil
		default:
			mergeUserDetailsIntoPending(pending, message)
			pending.PreviewBlock = buildProjectBlockPreview(pending, time.Now())
			out := withSharedMemoryPatch(state, &sharedmemory.Memory{PendingProjectCapture: pending})
			out["final_response"] = buildPreviewMessage(pending.PreviewBlock)
			out["task_status"] = "permission_required"
			return out, nil
		}
	}

	// Case: no pending capture yet.
	fresh := deriveInitialIntent(message)
	if desc, tasks := parseLabeledFields(message); desc != "" || len(tasks) > 0 {
		fresh.Title = strings.TrimSpace(strings.SplitN(fresh.Title, "\n", 2)[0])
		fresh.Description = desc
		fresh.InitialTasks = tasks
	}
	smartEnrich(ctx, deps, fresh, message)
	missing := computeMissingFields(fresh)
	if len(missing) > 0 {
		fresh.MissingFields = missing
		out := withSharedMemoryPatch(state, &sharedmemory.Memory{PendingProjectCapture: fresh})
		out["final_response"] = "To capture this project, please provide: " + strings.Join(missing, ", ") + ".\n" + clarificationQuestion()
		out["task_status"] = "permission_required"
		return out, nil
	}
	fresh.PreviewBlock = buildProjectBlockPreview(fresh, time.Now())
	fresh.AwaitingConfirmation = true
	out := withSharedMemoryPatch(state, &sharedmemory.Memory{PendingProjectCapture: fresh})
	out["final_response"] = buildPreviewMessage(fresh.PreviewBlock)
	out["task_status"] = "permission_required"
	return out, nil
}

// formatResponse ensures every path leaves a non-empty final_response and
// task_status, the final node before every turn terminates.
func formatResponse() workflow.Node {
	return func(ctx context.Context, state workflow.State) (workflow.State, error) {
		if str(state, "final_response") != "" {
			return workflow.State{}, nil
		}
		return workflow.State{"final_response": "Org operation completed.", "task_status": "complete"}, nil
	}
}
