package org_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamsih300u/orchestrator/runtime/checkpoint/inmem"
	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/org"
	"github.com/adamsih300u/orchestrator/runtime/sharedmemory"
	"github.com/adamsih300u/orchestrator/runtime/toolclient"
	"github.com/adamsih300u/orchestrator/runtime/workflow"
)

// fakeTools implements toolclient.ToolClient, overriding only the methods
// the org graph calls.
type fakeTools struct {
	toolclient.ToolClient
	findDoc     *toolclient.FindDocumentByPathResponse
	content     *toolclient.GetDocumentContentResponse
	items       []toolclient.OrgInboxItem
	addCalls    []toolclient.AddOrgInboxItemRequest
	toggleCalls []toolclient.ToggleOrgInboxItemRequest
	appendCalls []toolclient.AppendOrgInboxTextRequest
}

func (f *fakeTools) FindDocumentByPath(_ context.Context, _ toolclient.FindDocumentByPathRequest) (*toolclient.FindDocumentByPathResponse, error) {
	if f.findDoc != nil {
		return f.findDoc, nil
	}
	return &toolclient.FindDocumentByPathResponse{Found: false}, nil
}

func (f *fakeTools) GetDocumentContent(_ context.Context, _ toolclient.GetDocumentContentRequest) (*toolclient.GetDocumentContentResponse, error) {
	if f.content != nil {
		return f.content, nil
	}
	return &toolclient.GetDocumentContentResponse{}, nil
}

func (f *fakeTools) AddOrgInboxItem(_ context.Context, req toolclient.AddOrgInboxItemRequest) (*toolclient.AddOrgInboxItemResponse, error) {
	f.addCalls = append(f.addCalls, req)
	return &toolclient.AddOrgInboxItemResponse{Success: true, ItemID: "1"}, nil
}

func (f *fakeTools) ListOrgInboxItems(_ context.Context, _ toolclient.ListOrgInboxItemsRequest) (*toolclient.ListOrgInboxItemsResponse, error) {
	return &toolclient.ListOrgInboxItemsResponse{Items: f.items}, nil
}

func (f *fakeTools) ToggleOrgInboxItem(_ context.Context, req toolclient.ToggleOrgInboxItemRequest) (*toolclient.ToggleOrgInboxItemResponse, error) {
	f.toggleCalls = append(f.toggleCalls, req)
	return &toolclient.ToggleOrgInboxItemResponse{Success: true, Done: true}, nil
}

func (f *fakeTools) AppendOrgInboxText(_ context.Context, req toolclient.AppendOrgInboxTextRequest) (*toolclient.AppendOrgInboxTextResponse, error) {
	f.appendCalls = append(f.appendCalls, req)
	return &toolclient.AppendOrgInboxTextResponse{Success: true}, nil
}

// fakeProvider returns canned responses in order, repeating the last one
// once exhausted.
type fakeProvider struct {
	responses []string
	calls     int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, _ model.Request) (model.Response, error) {
	if len(f.responses) == 0 {
		return model.Response{Text: "{}"}, nil
	}
	if f.calls >= len(f.responses) {
		return model.Response{Text: f.responses[len(f.responses)-1]}, nil
	}
	resp := f.responses[f.calls]
	f.calls++
	return model.Response{Text: resp}, nil
}

func newDeps(t *testing.T, tools toolclient.ToolClient, provider model.Provider) org.Deps {
	t.Helper()
	gw, err := model.NewGateway(map[string]model.Provider{"fake": provider}, "fake")
	require.NoError(t, err)
	return org.Deps{Gateway: gw, ProviderName: "fake", Tools: tools}
}

func TestSynthesisPath_ResolvesAndSynthesizes(t *testing.T) {
	store := inmem.New()
	tools := &fakeTools{
		findDoc: &toolclient.FindDocumentByPathResponse{Found: true, DocumentID: "d1", Filename: "materials.org"},
		content: &toolclient.GetDocumentContentResponse{Content: "2x4 lumber, deck screws"},
	}
	provider := &fakeProvider{responses: []string{"Synthesized: you need lumber and screws."}}
	g := org.Build(store, newDeps(t, tools, provider))

	mem := sharedmemory.New()
	mem.ActiveEditor = &sharedmemory.ActiveEditor{
		Filename: "deck.org",
		Content:  "* Deck Project\n[[file:materials.org][Materials]]\n",
	}

	final, err := g.Invoke(context.Background(), workflow.Config{ThreadID: "org1"}, workflow.State{
		"user_id":       "u1",
		"query":         "compare this with the linked materials list",
		"cursor_offset": 1,
		"shared_memory": mem,
	})
	require.NoError(t, err)
	assert.Equal(t, "Synthesized: you need lumber and screws.", final["final_response"])
	assert.Equal(t, "complete", final["task_status"])
}

func TestManagementPath_List(t *testing.T) {
	store := inmem.New()
	tools := &fakeTools{items: []toolclient.OrgInboxItem{
		{ItemID: "1", Title: "call the plumber"},
		{ItemID: "2", Title: "buy paint", Done: true},
	}}
	g := org.Build(store, newDeps(t, tools, &fakeProvider{}))

	final, err := g.Invoke(context.Background(), workflow.Config{ThreadID: "org2"}, workflow.State{
		"user_id": "u1",
		"query":   "show my inbox",
	})
	require.NoError(t, err)
	assert.Contains(t, final["final_response"], "call the plumber")
	assert.Contains(t, final["final_response"], "buy paint")
}

func TestManagementPath_ToggleRequiresItemID(t *testing.T) {
	store := inmem.New()
	tools := &fakeTools{}
	g := org.Build(store, newDeps(t, tools, &fakeProvider{}))

	final, err := g.Invoke(context.Background(), workflow.Config{ThreadID: "org3"}, workflow.State{
		"user_id": "u1",
		"query":   "mark it done",
	})
	require.NoError(t, err)
	assert.Empty(t, tools.toggleCalls)
	assert.Contains(t, final["final_response"], "item id")
}

func TestManagementPath_ToggleWithItemID(t *testing.T) {
	store := inmem.New()
	tools := &fakeTools{}
	g := org.Build(store, newDeps(t, tools, &fakeProvider{}))

	final, err := g.Invoke(context.Background(), workflow.Config{ThreadID: "org4"}, workflow.State{
		"user_id": "u1",
		"query":   "mark item #7 done",
	})
	require.NoError(t, err)
	require.Len(t, tools.toggleCalls, 1)
	assert.Equal(t, "7", tools.toggleCalls[0].ItemID)
	assert.Contains(t, final["final_response"], "7")
}

func TestProjectCapture_FullFlowToConfirmation(t *testing.T) {
	store := inmem.New()
	tools := &fakeTools{}
	g := org.Build(store, newDeps(t, tools, &fakeProvider{}))
	cfg := workflow.Config{ThreadID: "org5"}

	first, err := g.Invoke(context.Background(), cfg, workflow.State{
		"user_id": "u1",
		"query":   "start project: repaint the garage",
	})
	require.NoError(t, err)
	assert.Equal(t, "permission_required", first["task_status"])
	assert.Contains(t, first["final_response"], "description")

	second, err := g.Invoke(context.Background(), cfg, workflow.State{
		"user_id": "u1",
		"query":   "Description: Repaint the garage walls and trim.\nTasks:\n- buy paint\n- tape trim",
	})
	require.NoError(t, err)
	assert.Equal(t, "permission_required", second["task_status"])
	assert.Contains(t, second["final_response"], "Reply 'yes' to proceed")

	third, err := g.Invoke(context.Background(), cfg, workflow.State{
		"user_id": "u1",
		"query":   "yes",
	})
	require.NoError(t, err)
	assert.Equal(t, "complete", third["task_status"])
	assert.Contains(t, third["final_response"], "added to inbox.org")
	require.Len(t, tools.appendCalls, 1)
	assert.Contains(t, tools.appendCalls[0].Text, "repaint the garage")
}

func TestProjectCapture_Cancellation(t *testing.T) {
	store := inmem.New()
	tools := &fakeTools{}
	g := org.Build(store, newDeps(t, tools, &fakeProvider{}))
	cfg := workflow.Config{ThreadID: "org6"}

	_, err := g.Invoke(context.Background(), cfg, workflow.State{
		"user_id": "u1",
		"query":   "start project: repaint the garage\nDescription: Repaint the garage.\nTasks:\n- buy paint",
	})
	require.NoError(t, err)

	final, err := g.Invoke(context.Background(), cfg, workflow.State{
		"user_id": "u1",
		"query":   "no, cancel that",
	})
	require.NoError(t, err)
	assert.Equal(t, "complete", final["task_status"])
	assert.Contains(t, final["final_response"], "cancelled")
	assert.Empty(t, tools.appendCalls)
}

func TestProjectCapture_DoesNotMutateEarlierCheckpoint(t *testing.T) {
	store := inmem.New()
	tools := &fakeTools{}
	g := org.Build(store, newDeps(t, tools, &fakeProvider{}))
	cfg := workflow.Config{ThreadID: "org7"}

	_, err := g.Invoke(context.Background(), cfg, workflow.State{
		"user_id": "u1",
		"query":   "start project: repaint the garage",
	})
	require.NoError(t, err)

	firstCheckpoint, err := g.GetState(context.Background(), cfg)
	require.NoError(t, err)
	firstMem := firstCheckpoint.Values["shared_memory"].(*sharedmemory.Memory)
	require.NotNil(t, firstMem.PendingProjectCapture)
	assert.Empty(t, firstMem.PendingProjectCapture.Description)

	_, err = g.Invoke(context.Background(), cfg, workflow.State{
		"user_id": "u1",
		"query":   "Description: something else entirely\nTasks:\n- a different task",
	})
	require.NoError(t, err)

	// The snapshot taken before the second turn must still read as it did
	// then, even though the second turn folds new details into the pending
	// capture under the same shared-memory key.
	assert.Empty(t, firstMem.PendingProjectCapture.Description)
}
