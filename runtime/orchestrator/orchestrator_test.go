package orchestrator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamsih300u/orchestrator/runtime/checkpoint/inmem"
	"github.com/adamsih300u/orchestrator/runtime/intent"
	"github.com/adamsih300u/orchestrator/runtime/model"
	"github.com/adamsih300u/orchestrator/runtime/orchestrator"
	"github.com/adamsih300u/orchestrator/runtime/sharedmemory"
	"github.com/adamsih300u/orchestrator/runtime/workflow"
)

// fakeProvider always classifies to a fixed target agent.
type fakeProvider struct{ target string }

func (f *fakeProvider) Name() string { return "fake" }
func (f *fakeProvider) Generate(_ context.Context, _ model.Request) (model.Response, error) {
	return model.Response{Text: `{"target_agent": "` + f.target + `", "action_intent": "chat", "confidence": 0.9}`}, nil
}

func echoGraph(store *inmem.Store, marker string) *workflow.Graph {
	g := workflow.New(store)
	g.AddNode("echo", func(_ context.Context, state workflow.State) (workflow.State, error) {
		return workflow.State{"handled_by": marker, "last_query": state["query"]}, nil
	})
	g.SetEntry("echo")
	return g
}

func newClassifier(t *testing.T, target string) *intent.Classifier {
	t.Helper()
	gw, err := model.NewGateway(map[string]model.Provider{"fake": &fakeProvider{target: target}}, "fake")
	require.NoError(t, err)
	return intent.New(gw, "fake")
}

func TestStreamChat_RoutesToClassifiedAgent(t *testing.T) {
	store := inmem.New()
	svc := orchestrator.NewService(store, newClassifier(t, "research"), map[string]*workflow.Graph{
		"research": echoGraph(store, "research"),
		"org":      echoGraph(store, "org"),
	}, "chat")

	result, err := svc.StreamChat(context.Background(), orchestrator.ChatRequest{
		UserID: "u1", ConversationID: "c1", Query: "what is the weather", AgentType: "auto",
	})
	require.NoError(t, err)
	assert.Equal(t, "research", result.FinalState["handled_by"])
	assert.False(t, result.Interrupted)
}

func TestStreamChat_ExplicitAgentTypeSkipsClassification(t *testing.T) {
	store := inmem.New()
	svc := orchestrator.NewService(store, newClassifier(t, "research"), map[string]*workflow.Graph{
		"research": echoGraph(store, "research"),
		"org":      echoGraph(store, "org"),
	}, "chat")

	result, err := svc.StreamChat(context.Background(), orchestrator.ChatRequest{
		UserID: "u1", ConversationID: "c1", Query: "add a todo", AgentType: "org",
	})
	require.NoError(t, err)
	assert.Equal(t, "org", result.FinalState["handled_by"])
}

func TestStreamChat_UnknownAgentFallsBackToDefault(t *testing.T) {
	store := inmem.New()
	svc := orchestrator.NewService(store, newClassifier(t, "nonexistent"), map[string]*workflow.Graph{
		"chat": echoGraph(store, "chat"),
	}, "chat")

	result, err := svc.StreamChat(context.Background(), orchestrator.ChatRequest{
		UserID: "u1", ConversationID: "c1", Query: "hello", AgentType: "auto",
	})
	require.NoError(t, err)
	assert.Equal(t, "chat", result.FinalState["handled_by"])
}

func TestStreamChat_ActiveEditorMergesOntoPriorMemory(t *testing.T) {
	store := inmem.New()
	captured := make(map[string]any)
	g := workflow.New(store)
	g.AddNode("capture", func(_ context.Context, state workflow.State) (workflow.State, error) {
		mem, _ := state["shared_memory"].(*sharedmemory.Memory)
		if mem != nil {
			captured["primary_agent"] = mem.PrimaryAgentSelected
			if mem.ActiveEditor != nil {
				captured["filename"] = mem.ActiveEditor.Filename
			}
		}
		return workflow.State{"shared_memory": sharedmemory.Merge(mem, &sharedmemory.Memory{PrimaryAgentSelected: "org"})}, nil
	})
	g.SetEntry("capture")

	svc := orchestrator.NewService(store, newClassifier(t, "org"), map[string]*workflow.Graph{"org": g}, "org")

	_, err := svc.StreamChat(context.Background(), orchestrator.ChatRequest{
		UserID: "u1", ConversationID: "c1", Query: "turn one", AgentType: "org",
	})
	require.NoError(t, err)
	// Turn one carries no shared memory into the node; what it writes back
	// is persisted in the thread's checkpoint.
	cp, err := store.Latest(context.Background(), "u1:c1")
	require.NoError(t, err)
	assert.Equal(t, "org", cp.Values["shared_memory"].(*sharedmemory.Memory).PrimaryAgentSelected)

	_, err = svc.StreamChat(context.Background(), orchestrator.ChatRequest{
		UserID: "u1", ConversationID: "c1", Query: "turn two", AgentType: "org",
		ActiveEditor: &orchestrator.ActiveEditorInput{Filename: "plan.org", IsEditable: true},
	})
	require.NoError(t, err)
	// PrimaryAgentSelected from turn one must survive alongside the new
	// active_editor patch, proving the merge (not a raw replace) happened.
	assert.Equal(t, "org", captured["primary_agent"])
	assert.Equal(t, "plan.org", captured["filename"])
}

func TestStreamChat_PermissionGrantDoesNotWipeActiveEditor(t *testing.T) {
	store := inmem.New()
	var lastEditor, lastPermission string
	g := workflow.New(store)
	g.AddNode("capture", func(_ context.Context, state workflow.State) (workflow.State, error) {
		mem, _ := state["shared_memory"].(*sharedmemory.Memory)
		if mem != nil {
			if mem.ActiveEditor != nil {
				lastEditor = mem.ActiveEditor.Filename
			}
			lastPermission = string(mem.WebSearchPermission)
		}
		return nil, nil
	})
	g.SetEntry("capture")

	svc := orchestrator.NewService(store, newClassifier(t, "research"), map[string]*workflow.Graph{"research": g}, "research")

	_, err := svc.StreamChat(context.Background(), orchestrator.ChatRequest{
		UserID: "u1", ConversationID: "c2", Query: "q1", AgentType: "research",
		ActiveEditor: &orchestrator.ActiveEditorInput{Filename: "notes.org"},
	})
	require.NoError(t, err)

	_, err = svc.StreamChat(context.Background(), orchestrator.ChatRequest{
		UserID: "u1", ConversationID: "c2", Query: "q2", AgentType: "research",
		PermissionGrant: &orchestrator.PermissionGrantInput{Permission: "web_search_permission", Granted: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "notes.org", lastEditor)
	assert.Equal(t, "granted", lastPermission)
}
