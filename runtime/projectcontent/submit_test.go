package projectcontent_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamsih300u/orchestrator/runtime/projectcontent"
	"github.com/adamsih300u/orchestrator/runtime/sharedmemory"
	"github.com/adamsih300u/orchestrator/runtime/toolclient"
)

// fakeTools implements toolclient.ToolClient, overriding only the document
// operations the submission logic calls.
type fakeTools struct {
	toolclient.ToolClient
	content        *toolclient.GetDocumentContentResponse
	updateCalls    []toolclient.UpdateDocumentContentRequest
	proposeCalls   []toolclient.ProposeDocumentEditRequest
	applyCalls     []toolclient.ApplyOperationsDirectlyRequest
	applyFails     bool
	updateResponse func(req toolclient.UpdateDocumentContentRequest) *toolclient.UpdateDocumentContentResponse
}

func (f *fakeTools) GetDocumentContent(_ context.Context, _ toolclient.GetDocumentContentRequest) (*toolclient.GetDocumentContentResponse, error) {
	if f.content != nil {
		return f.content, nil
	}
	return &toolclient.GetDocumentContentResponse{}, nil
}

func (f *fakeTools) UpdateDocumentContent(_ context.Context, req toolclient.UpdateDocumentContentRequest) (*toolclient.UpdateDocumentContentResponse, error) {
	f.updateCalls = append(f.updateCalls, req)
	if req.Append && f.updateResponse != nil {
		// Simulate the backend applying the append before the next read.
		if f.content != nil {
			f.content = &toolclient.GetDocumentContentResponse{Content: f.content.Content + req.Content}
		}
	}
	if !req.Append {
		f.content = &toolclient.GetDocumentContentResponse{Content: req.Content}
	}
	return &toolclient.UpdateDocumentContentResponse{Success: true, ContentLength: len(req.Content)}, nil
}

func (f *fakeTools) ProposeDocumentEdit(_ context.Context, req toolclient.ProposeDocumentEditRequest) (*toolclient.ProposeDocumentEditResponse, error) {
	f.proposeCalls = append(f.proposeCalls, req)
	return &toolclient.ProposeDocumentEditResponse{Success: true, ProposalID: "p1"}, nil
}

func (f *fakeTools) ApplyOperationsDirectly(_ context.Context, req toolclient.ApplyOperationsDirectlyRequest) (*toolclient.ApplyOperationsDirectlyResponse, error) {
	f.applyCalls = append(f.applyCalls, req)
	if f.applyFails {
		return &toolclient.ApplyOperationsDirectlyResponse{Success: false}, nil
	}
	return &toolclient.ApplyOperationsDirectlyResponse{Success: true, AppliedCount: 1}, nil
}

func TestSubmitSectionUpdate_OpenInEditorProposesEdit(t *testing.T) {
	tools := &fakeTools{content: &toolclient.GetDocumentContentResponse{
		Content: "# Plan\n\n## Power Supply\n\nOld brief notes.\n\n## Enclosure\n\nBox.\n",
	}}
	editor := &sharedmemory.ActiveEditor{IsEditable: true, Filename: "plan.org"}
	deps := projectcontent.Deps{Tools: tools, UserID: "u1", AgentName: "hardware"}

	out, err := projectcontent.SubmitSectionUpdate(context.Background(), deps, editor, "doc1", "plan.org", "Power Supply", "New detailed regulator specification content.")
	require.NoError(t, err)
	assert.Equal(t, "proposed", out.Action)
	require.Len(t, tools.proposeCalls, 1)
	assert.Equal(t, "operations", tools.proposeCalls[0].EditType)
}

func TestSubmitSectionUpdate_ClosedDocumentAppliesDirectly(t *testing.T) {
	tools := &fakeTools{content: &toolclient.GetDocumentContentResponse{
		Content: "# Plan\n\n## Power Supply\n\nOld brief notes.\n\n## Enclosure\n\nBox.\n",
	}}
	deps := projectcontent.Deps{Tools: tools, UserID: "u1", AgentName: "hardware"}

	out, err := projectcontent.SubmitSectionUpdate(context.Background(), deps, nil, "doc1", "plan.org", "Power Supply", "New detailed regulator specification content.")
	require.NoError(t, err)
	assert.Equal(t, "updated", out.Action)
	require.Len(t, tools.applyCalls, 1)
}

func TestSubmitSectionUpdate_FallsBackToFullContentReplace(t *testing.T) {
	tools := &fakeTools{
		applyFails: true,
		content: &toolclient.GetDocumentContentResponse{
			Content: "# Plan\n\n## Power Supply\n\nOld brief notes.\n\n## Enclosure\n\nBox.\n",
		},
	}
	deps := projectcontent.Deps{Tools: tools, UserID: "u1", AgentName: "hardware"}

	out, err := projectcontent.SubmitSectionUpdate(context.Background(), deps, nil, "doc1", "plan.org", "Power Supply", "New detailed regulator specification content.")
	require.NoError(t, err)
	assert.Equal(t, "updated", out.Action)
	require.Len(t, tools.updateCalls, 1)
	assert.False(t, tools.updateCalls[0].Append)
	assert.NotContains(t, tools.updateCalls[0].Content, "Old brief notes")
}

func TestSubmitSectionUpdate_NoMatchAppendsNewSection(t *testing.T) {
	tools := &fakeTools{content: &toolclient.GetDocumentContentResponse{
		Content: "---\ntitle: Plan\n---\n# Plan\n\n## Enclosure\n\nBox.\n",
	}}
	deps := projectcontent.Deps{Tools: tools, UserID: "u1", AgentName: "hardware"}

	out, err := projectcontent.SubmitSectionUpdate(context.Background(), deps, nil, "doc1", "plan.org", "Power Supply", "Brand new section content about the regulator.")
	require.NoError(t, err)
	assert.Equal(t, "appended", out.Action)
	require.Len(t, tools.updateCalls, 1)
	assert.True(t, tools.updateCalls[0].Append)
}

func TestAppendPreservingFrontmatter_RestoresLostField(t *testing.T) {
	before := "---\ntitle: Plan\ncomponents:\n  - power.org\n---\nBody.\n"
	tools := &fakeTools{content: &toolclient.GetDocumentContentResponse{Content: before}}
	tools.updateResponse = func(req toolclient.UpdateDocumentContentRequest) *toolclient.UpdateDocumentContentResponse {
		return &toolclient.UpdateDocumentContentResponse{Success: true}
	}

	// Simulate a lossy append that drops the components field once the
	// underlying backend re-renders frontmatter after the append call.
	callCount := 0
	wrapped := &lossyOnAppend{fakeTools: tools, onAppend: func() {
		callCount++
		tools.content = &toolclient.GetDocumentContentResponse{
			Content: "---\ntitle: Plan\n---\nBody.\n\n## New Section\n\nContent.\n",
		}
	}}

	deps := projectcontent.Deps{Tools: wrapped, UserID: "u1", AgentName: "hardware"}
	out, err := projectcontent.SubmitSectionUpdate(context.Background(), deps, nil, "doc1", "plan.org", "New Section", "Content about a new part.")
	require.NoError(t, err)
	assert.Equal(t, "appended", out.Action)
	assert.Equal(t, 1, callCount)

	// The final stored content (from the restore call) must carry the
	// components field back.
	last := tools.updateCalls[len(tools.updateCalls)-1]
	assert.Contains(t, last.Content, "components")
	assert.False(t, last.Append)
}

// lossyOnAppend wraps fakeTools to simulate a backend that drops a
// frontmatter field across an append, invoking onAppend once right after
// the append call completes, before the next GetDocumentContent read.
type lossyOnAppend struct {
	*fakeTools
	onAppend func()
}

func (l *lossyOnAppend) UpdateDocumentContent(ctx context.Context, req toolclient.UpdateDocumentContentRequest) (*toolclient.UpdateDocumentContentResponse, error) {
	resp, err := l.fakeTools.UpdateDocumentContent(ctx, req)
	if req.Append && l.onAppend != nil {
		l.onAppend()
	}
	return resp, err
}
