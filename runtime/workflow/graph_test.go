package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamsih300u/orchestrator/runtime/checkpoint/inmem"
	"github.com/adamsih300u/orchestrator/runtime/workflow"
)

func TestInvoke_LinearGraph(t *testing.T) {
	store := inmem.New()
	g := workflow.New(store).
		AddNode("a", func(_ context.Context, s workflow.State) (workflow.State, error) {
			return workflow.State{"a_ran": true}, nil
		}).
		AddNode("b", func(_ context.Context, s workflow.State) (workflow.State, error) {
			return workflow.State{"b_ran": true}, nil
		}).
		SetEntry("a").
		AddEdge("a", "b").
		AddEdge("b", workflow.End)

	final, err := g.Invoke(context.Background(), workflow.Config{ThreadID: "t1"}, workflow.State{"query": "hi"})
	require.NoError(t, err)
	assert.Equal(t, true, final["a_ran"])
	assert.Equal(t, true, final["b_ran"])
	assert.Equal(t, "hi", final["query"])
}

func TestInvoke_ConditionalRouting(t *testing.T) {
	store := inmem.New()
	g := workflow.New(store).
		AddNode("check", func(_ context.Context, s workflow.State) (workflow.State, error) {
			return workflow.State{"checked": true}, nil
		}).
		AddNode("fast", func(_ context.Context, s workflow.State) (workflow.State, error) {
			return workflow.State{"path": "fast"}, nil
		}).
		AddNode("slow", func(_ context.Context, s workflow.State) (workflow.State, error) {
			return workflow.State{"path": "slow"}, nil
		}).
		SetEntry("check").
		AddConditionalEdge("check", func(s workflow.State) string {
			if s["quick"] == true {
				return "quick"
			}
			return "full"
		}, map[string]string{"quick": "fast", "full": "slow"}).
		AddEdge("fast", workflow.End).
		AddEdge("slow", workflow.End)

	final, err := g.Invoke(context.Background(), workflow.Config{ThreadID: "t2"}, workflow.State{"quick": true})
	require.NoError(t, err)
	assert.Equal(t, "fast", final["path"])
}

func TestInvoke_InterruptBeforeHaltsAndResumes(t *testing.T) {
	store := inmem.New()
	ran := map[string]int{}
	g := workflow.New(store).
		AddNode("start", func(_ context.Context, s workflow.State) (workflow.State, error) {
			ran["start"]++
			return workflow.State{"started": true}, nil
		}).
		AddNode("approve", func(_ context.Context, s workflow.State) (workflow.State, error) {
			ran["approve"]++
			return workflow.State{"approved": true}, nil
		}).
		SetEntry("start").
		AddEdge("start", "approve").
		AddEdge("approve", workflow.End).
		SetInterruptBefore("approve")

	cfg := workflow.Config{ThreadID: "t3"}

	final, err := g.Invoke(context.Background(), cfg, workflow.State{"query": "do it"})
	require.NoError(t, err)
	assert.Equal(t, 1, ran["start"])
	assert.Equal(t, 0, ran["approve"])
	assert.Nil(t, final["approved"])

	final, err = g.Invoke(context.Background(), cfg, workflow.State{"query": "yes"})
	require.NoError(t, err)
	assert.Equal(t, 1, ran["approve"])
	assert.Equal(t, true, final["approved"])
	assert.Equal(t, true, final["started"])
}

func TestInvoke_RecursionLimitExceeded(t *testing.T) {
	store := inmem.New()
	g := workflow.New(store).
		AddNode("loop", func(_ context.Context, s workflow.State) (workflow.State, error) {
			return workflow.State{}, nil
		}).
		SetEntry("loop").
		AddEdge("loop", "loop").
		SetRecursionLimit(3)

	_, err := g.Invoke(context.Background(), workflow.Config{ThreadID: "t4"}, workflow.State{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recursion exceeded")
}

func TestStream_EmitsInterruptEvent(t *testing.T) {
	store := inmem.New()
	g := workflow.New(store).
		AddNode("start", func(_ context.Context, s workflow.State) (workflow.State, error) {
			return workflow.State{"started": true}, nil
		}).
		AddNode("gate", func(_ context.Context, s workflow.State) (workflow.State, error) {
			return workflow.State{"gated": true}, nil
		}).
		SetEntry("start").
		AddEdge("start", "gate").
		AddEdge("gate", workflow.End).
		SetInterruptBefore("gate")

	events, err := g.Stream(context.Background(), workflow.Config{ThreadID: "t5"}, workflow.State{})
	require.NoError(t, err)

	var last workflow.Event
	for ev := range events {
		last = ev
	}
	assert.Equal(t, workflow.InterruptEvent, last.Node)
}
