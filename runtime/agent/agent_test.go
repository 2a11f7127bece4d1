package agent_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamsih300u/orchestrator/runtime/agent"
	"github.com/adamsih300u/orchestrator/runtime/model"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := agent.NewRegistry()
	stub := agent.AgentFunc(func(_ context.Context, query string, _ agent.Metadata, _ []model.Message) (agent.Result, error) {
		return agent.Result{Response: "echo: " + query, TaskStatus: agent.TaskStatusComplete}, nil
	})
	r.Register("research", stub)

	found, ok := r.Lookup("research")
	require.True(t, ok)
	res, err := found.Run(context.Background(), "hello", agent.Metadata{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "echo: hello", res.Response)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestThreadID(t *testing.T) {
	assert.Equal(t, "u1:c1", agent.ThreadID("u1", "c1"))
}

func TestDatetimeContext_DefaultsToUTC(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	md := agent.Metadata{Persona: agent.Persona{}}
	got := agent.DatetimeContext(md, now)
	assert.Contains(t, got, "UTC")
}

func TestDatetimeContext_InvalidTimezoneFallsBackToUTC(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	md := agent.Metadata{Persona: agent.Persona{Timezone: "Not/AZone"}}
	got := agent.DatetimeContext(md, now)
	assert.Contains(t, got, "UTC")
}

func TestMergeHistory_AppendsInOrder(t *testing.T) {
	now := time.Now()
	history := []model.Message{{Role: model.RoleUser, Content: "first"}}
	merged := agent.MergeHistory(history, "second", "answer", now)
	require.Len(t, merged, 3)
	assert.Equal(t, "first", merged[0].Content)
	assert.Equal(t, model.RoleUser, merged[1].Role)
	assert.Equal(t, "second", merged[1].Content)
	assert.Equal(t, model.RoleAssistant, merged[2].Role)
	assert.Equal(t, "answer", merged[2].Content)
}

func TestSelectModel(t *testing.T) {
	assert.Equal(t, model.ModelClassHighReasoning, agent.SelectModel(true, false))
	assert.Equal(t, model.ModelClassSmall, agent.SelectModel(false, true))
	assert.Equal(t, model.ModelClassDefault, agent.SelectModel(false, false))
}
