package inmem_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamsih300u/orchestrator/runtime/checkpoint"
	"github.com/adamsih300u/orchestrator/runtime/checkpoint/inmem"
)

func TestLatest_NotFound(t *testing.T) {
	s := inmem.New()
	_, err := s.Latest(context.Background(), "u1:c1")
	require.ErrorIs(t, err, checkpoint.ErrNotFound)
}

func TestPutThenLatest_RoundTrips(t *testing.T) {
	s := inmem.New()
	ctx := context.Background()

	cp1, err := s.Put(ctx, "u1:c1", map[string]any{"query": "hello"}, []string{"quick_answer_check"})
	require.NoError(t, err)
	assert.Equal(t, 1, cp1.Version)

	got, err := s.Latest(ctx, "u1:c1")
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Values["query"])
	assert.Equal(t, []string{"quick_answer_check"}, got.Next)
}

func TestPut_Linearity(t *testing.T) {
	s := inmem.New()
	ctx := context.Background()

	_, err := s.Put(ctx, "u1:c1", map[string]any{"a": 1}, nil)
	require.NoError(t, err)
	_, err = s.Put(ctx, "u1:c1", map[string]any{"b": 2}, nil)
	require.NoError(t, err)

	got, err := s.Latest(ctx, "u1:c1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, 2, got.Values["b"])
	// Put doesn't merge with prior values automatically — callers merge
	// explicitly via UpdateState or by re-supplying the full state.
	_, hasA := got.Values["a"]
	assert.False(t, hasA)
}

func TestUpdateState_MergesWithoutAdvancingNext(t *testing.T) {
	s := inmem.New()
	ctx := context.Background()

	_, err := s.Put(ctx, "u1:c1", map[string]any{"a": 1}, []string{"web_search_permission"})
	require.NoError(t, err)

	cp, err := s.UpdateState(ctx, "u1:c1", map[string]any{"b": 2})
	require.NoError(t, err)
	assert.Equal(t, 1, cp.Values["a"])
	assert.Equal(t, 2, cp.Values["b"])
	assert.Equal(t, []string{"web_search_permission"}, cp.Next)
}

func TestBranch(t *testing.T) {
	s := inmem.New()
	ctx := context.Background()

	cp1, err := s.Put(ctx, "u1:c1", map[string]any{"a": 1}, nil)
	require.NoError(t, err)
	_, err = s.Put(ctx, "u1:c1", map[string]any{"a": 2}, nil)
	require.NoError(t, err)

	branched, err := s.Branch(ctx, "u1:c1", cp1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, branched.Values["a"])

	_, err = s.Branch(ctx, "u1:c1", "missing-id")
	require.ErrorIs(t, err, checkpoint.ErrCheckpointNotFound)
}

func TestThreadIsolation(t *testing.T) {
	s := inmem.New()
	ctx := context.Background()

	_, err := s.Put(ctx, "u1:c1", map[string]any{"a": 1}, nil)
	require.NoError(t, err)

	_, err = s.Latest(ctx, "u2:c1")
	require.ErrorIs(t, err, checkpoint.ErrNotFound)
}
