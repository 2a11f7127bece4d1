package org

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/toolclient"
)

// itemIDPattern matches the user referencing an inbox item by id, e.g.
// "toggle #3" — the only supported reference form; list_org_inbox_items
// surfaces the ids a follow-up command can target.
var itemIDPattern = regexp.MustCompile(`#(\S+)`)

// interpretAdd runs the LLM over the raw message to produce the strictly
// typed add-item intent the tool service expects.
func interpretAdd(ctx context.Context, deps Deps, message string) (AddItemIntent, error) {
	req := model.Request{
		System: "Interpret this org-inbox capture request. Decide the entry kind (todo, event, " +
			"contact, or checkbox), an optional schedule as <YYYY-MM-DD Dow>, an optional repeater " +
			"(+Nd, +Nw, +Nm, or .+Nm), up to 3 suggested tags, and contact properties if this is a " +
			"contact. If the request is too ambiguous to capture, set clarification_needed and ask " +
			"a clarification_question instead.",
		Messages:    []model.Message{{Role: model.RoleUser, Content: message}},
		ModelClass:  model.ModelClassSmall,
		JSONSchema:  []byte(addItemSchema),
		Temperature: 0.2,
	}
	var out AddItemIntent
	if err := deps.Gateway.GenerateJSON(ctx, deps.ProviderName, req, &out); err != nil {
		return AddItemIntent{}, err
	}
	return out, nil
}

func handleAdd(ctx context.Context, deps Deps, userID, message string) (string, error) {
	intent, err := interpretAdd(ctx, deps, message)
	if err != nil {
		return "", fmt.Errorf("interpret add request: %w", err)
	}
	if intent.ClarificationNeeded {
		return intent.ClarificationQuestion, nil
	}

	req := toolclient.AddOrgInboxItemRequest{
		UserID:        userID,
		Title:         strings.TrimSpace(intent.Title),
		EntryKind:     intent.EntryKind,
		SuggestedTags: intent.SuggestedTags,
	}
	if intent.Schedule != nil {
		req.Schedule = *intent.Schedule
	}
	if intent.Repeater != nil {
		req.Repeater = *intent.Repeater
	}
	if intent.ContactProperties != nil {
		req.ContactProperties = intent.ContactProperties
	}

	resp, err := deps.Tools.AddOrgInboxItem(ctx, req)
	if err != nil || resp == nil || !resp.Success {
		return "Failed to add item to inbox.org.", nil
	}

	if intent.AssistantConfirmation != "" {
		return intent.AssistantConfirmation, nil
	}

	var parts []string
	switch intent.EntryKind {
	case "contact":
		parts = append(parts, fmt.Sprintf("Added contact %q to inbox.org", req.Title))
	case "event":
		parts = append(parts, fmt.Sprintf("Added event %q to inbox.org", req.Title))
	default:
		parts = append(parts, fmt.Sprintf("Added TODO %q to inbox.org", req.Title))
	}
	if req.Schedule != "" {
		sched := "(scheduled " + req.Schedule
		if req.Repeater != "" {
			sched += ", repeats " + req.Repeater
		}
		parts = append(parts, sched+")")
	}
	if len(req.SuggestedTags) > 0 {
		parts = append(parts, "| tags: "+strings.Join(req.SuggestedTags, ":"))
	}
	return strings.Join(parts, " "), nil
}

func handleList(ctx context.Context, deps Deps, userID string) (string, error) {
	resp, err := deps.Tools.ListOrgInboxItems(ctx, toolclient.ListOrgInboxItemsRequest{UserID: userID, IncludeDone: false})
	if err != nil || resp == nil {
		return "Failed to list inbox items.", nil
	}
	if len(resp.Items) == 0 {
		return "Your inbox is empty.", nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Inbox has %d items:\n", len(resp.Items))
	limit := len(resp.Items)
	if limit > 10 {
		limit = 10
	}
	for i, item := range resp.Items[:limit] {
		status := "[ ]"
		if item.Done {
			status = "[x]"
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, status, item.Title)
	}
	if len(resp.Items) > 10 {
		fmt.Fprintf(&b, "... and %d more items\n", len(resp.Items)-10)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func handleToggle(ctx context.Context, deps Deps, userID, message string) (string, error) {
	itemID, ok := extractItemID(message)
	if !ok {
		return "Which item should I toggle? Reply with its item id (e.g. #3).", nil
	}
	resp, err := deps.Tools.ToggleOrgInboxItem(ctx, toolclient.ToggleOrgInboxItemRequest{UserID: userID, ItemID: itemID})
	if err != nil || resp == nil || !resp.Success {
		return "Failed to toggle item.", nil
	}
	if resp.Done {
		return "Marked item " + itemID + " done.", nil
	}
	return "Marked item " + itemID + " not done.", nil
}

func handleUpdate(ctx context.Context, deps Deps, userID, message string) (string, error) {
	itemID, ok := extractItemID(message)
	if !ok {
		return "Which item should I update, and to what title? Reply with its item id (e.g. #3).", nil
	}
	resp, err := deps.Tools.UpdateOrgInboxItem(ctx, toolclient.UpdateOrgInboxItemRequest{
		UserID: userID, ItemID: itemID, Title: strings.TrimSpace(message),
	})
	if err != nil || resp == nil || !resp.Success {
		return "Failed to update item.", nil
	}
	return "Updated item " + itemID + ".", nil
}

func handleSchedule(ctx context.Context, deps Deps, userID, message string) (string, error) {
	itemID, ok := extractItemID(message)
	if !ok {
		return "Which item should I schedule? Reply with its item id (e.g. #3).", nil
	}
	sched := targetDateRegexp.FindString(message)
	if sched == "" {
		return "What date should I schedule it for? Reply with <YYYY-MM-DD Dow>.", nil
	}
	resp, err := deps.Tools.SetOrgInboxSchedule(ctx, toolclient.SetOrgInboxScheduleRequest{
		UserID: userID, ItemID: itemID, Schedule: sched,
	})
	if err != nil || resp == nil || !resp.Success {
		return "Failed to set schedule.", nil
	}
	return "Scheduled item " + itemID + " for " + sched + ".", nil
}

func handleArchiveDone(ctx context.Context, deps Deps, userID string) (string, error) {
	resp, err := deps.Tools.ArchiveOrgInboxDone(ctx, toolclient.ArchiveOrgInboxDoneRequest{UserID: userID})
	if err != nil || resp == nil || !resp.Success {
		return "Failed to archive completed items.", nil
	}
	return fmt.Sprintf("Archived %d completed items.", resp.ArchivedCount), nil
}

func extractItemID(message string) (string, bool) {
	m := itemIDPattern.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[1], true
}
