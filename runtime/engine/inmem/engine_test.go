package inmem_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamsih300u/orchestrator/runtime/engine"
	"github.com/adamsih300u/orchestrator/runtime/engine/inmem"
)

func TestStartWorkflow_ExecutesActivityAndReturnsResult(t *testing.T) {
	e := inmem.New()
	ctx := context.Background()

	require.NoError(t, e.RegisterActivity(ctx, engine.ActivityDefinition{
		Name: "double",
		Handler: func(_ context.Context, input any) (any, error) {
			return input.(int) * 2, nil
		},
	}))
	require.NoError(t, e.RegisterWorkflow(ctx, engine.WorkflowDefinition{
		Name: "doubler",
		Handler: func(wctx engine.WorkflowContext, input any) (any, error) {
			var out int
			if err := wctx.ExecuteActivity(wctx.Context(), engine.ActivityRequest{Name: "double", Input: input.(int)}, &out); err != nil {
				return nil, err
			}
			return out, nil
		},
	}))

	h, err := e.StartWorkflow(ctx, engine.WorkflowStartRequest{ID: "run-1", Workflow: "doubler", Input: 21})
	require.NoError(t, err)

	var result int
	require.NoError(t, h.Wait(ctx, &result))
	assert.Equal(t, 42, result)
}

func TestStartWorkflow_UnregisteredWorkflow(t *testing.T) {
	e := inmem.New()
	_, err := e.StartWorkflow(context.Background(), engine.WorkflowStartRequest{ID: "x", Workflow: "missing"})
	assert.Error(t, err)
}

func TestSignal_DeliversPayloadToWorkflow(t *testing.T) {
	e := inmem.New()
	ctx := context.Background()

	require.NoError(t, e.RegisterWorkflow(ctx, engine.WorkflowDefinition{
		Name: "waiter",
		Handler: func(wctx engine.WorkflowContext, _ any) (any, error) {
			var signal string
			if err := wctx.SignalChannel("resume").Receive(wctx.Context(), &signal); err != nil {
				return nil, err
			}
			return signal, nil
		},
	}))

	h, err := e.StartWorkflow(ctx, engine.WorkflowStartRequest{ID: "run-2", Workflow: "waiter"})
	require.NoError(t, err)

	require.NoError(t, h.Signal(ctx, "resume", "go"))

	var result string
	require.NoError(t, h.Wait(ctx, &result))
	assert.Equal(t, "go", result)
}

func TestExecuteActivityAsync_ParallelFutures(t *testing.T) {
	e := inmem.New()
	ctx := context.Background()

	require.NoError(t, e.RegisterActivity(ctx, engine.ActivityDefinition{
		Name: "slow",
		Handler: func(_ context.Context, input any) (any, error) {
			time.Sleep(5 * time.Millisecond)
			return input, nil
		},
	}))
	require.NoError(t, e.RegisterWorkflow(ctx, engine.WorkflowDefinition{
		Name: "fanout",
		Handler: func(wctx engine.WorkflowContext, _ any) (any, error) {
			f1, err := wctx.ExecuteActivityAsync(wctx.Context(), engine.ActivityRequest{Name: "slow", Input: 1})
			if err != nil {
				return nil, err
			}
			f2, err := wctx.ExecuteActivityAsync(wctx.Context(), engine.ActivityRequest{Name: "slow", Input: 2})
			if err != nil {
				return nil, err
			}
			var r1, r2 int
			if err := f1.Get(wctx.Context(), &r1); err != nil {
				return nil, err
			}
			if err := f2.Get(wctx.Context(), &r2); err != nil {
				return nil, err
			}
			return r1 + r2, nil
		},
	}))

	h, err := e.StartWorkflow(ctx, engine.WorkflowStartRequest{ID: "run-3", Workflow: "fanout"})
	require.NoError(t, err)

	var result int
	require.NoError(t, h.Wait(ctx, &result))
	assert.Equal(t, 3, result)
}

func TestWorkflowError_PropagatesToWait(t *testing.T) {
	e := inmem.New()
	ctx := context.Background()
	wantErr := errors.New("boom")

	require.NoError(t, e.RegisterWorkflow(ctx, engine.WorkflowDefinition{
		Name: "failer",
		Handler: func(_ engine.WorkflowContext, _ any) (any, error) {
			return nil, wantErr
		},
	}))

	h, err := e.StartWorkflow(ctx, engine.WorkflowStartRequest{ID: "run-4", Workflow: "failer"})
	require.NoError(t, err)

	var result any
	err = h.Wait(ctx, &result)
	assert.ErrorIs(t, err, wantErr)
}
