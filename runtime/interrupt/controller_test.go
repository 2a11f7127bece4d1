package interrupt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamsih300u/orchestrator/runtime/engine"
)

// testChannel is a minimal engine.SignalChannel backed by a Go channel.
type testChannel struct {
	ch chan any
}

func newTestChannel() *testChannel { return &testChannel{ch: make(chan any, 4)} }

func (c *testChannel) Receive(ctx context.Context, dest any) error {
	select {
	case v := <-c.ch:
		return assignInto(dest, v)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *testChannel) ReceiveAsync(dest any) bool {
	select {
	case v := <-c.ch:
		_ = assignInto(dest, v)
		return true
	default:
		return false
	}
}

func assignInto(dest, v any) error {
	switch d := dest.(type) {
	case *PauseRequest:
		*d = v.(PauseRequest)
	case *ResumeRequest:
		*d = v.(ResumeRequest)
	case *PermissionGrant:
		*d = v.(PermissionGrant)
	default:
		return errors.New("interrupt: unsupported destination type in test channel")
	}
	return nil
}

// testWorkflowContext exposes only the signal channels the controller uses.
type testWorkflowContext struct {
	engine.WorkflowContext
	channels map[string]*testChannel
}

func (w *testWorkflowContext) SignalChannel(name string) engine.SignalChannel {
	return w.channels[name]
}

func newTestWorkflowContext() *testWorkflowContext {
	return &testWorkflowContext{channels: map[string]*testChannel{
		SignalPause:             newTestChannel(),
		SignalResume:            newTestChannel(),
		SignalProvidePermission: newTestChannel(),
	}}
}

func TestController_PollPause(t *testing.T) {
	wfCtx := newTestWorkflowContext()
	ctrl := NewController(wfCtx)

	_, ok := ctrl.PollPause()
	assert.False(t, ok)

	wfCtx.channels[SignalPause].ch <- PauseRequest{ThreadID: "t1", Reason: "human request"}
	req, ok := ctrl.PollPause()
	require.True(t, ok)
	assert.Equal(t, "t1", req.ThreadID)
}

func TestController_WaitResume(t *testing.T) {
	wfCtx := newTestWorkflowContext()
	ctrl := NewController(wfCtx)

	wfCtx.channels[SignalResume].ch <- ResumeRequest{ThreadID: "t1", Values: map[string]any{"answer": "yes"}}
	req, err := ctrl.WaitResume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "yes", req.Values["answer"])
}

func TestController_WaitResume_ContextCanceled(t *testing.T) {
	wfCtx := newTestWorkflowContext()
	ctrl := NewController(wfCtx)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := ctrl.WaitResume(ctx)
	assert.Error(t, err)
}

func TestController_WaitPermission(t *testing.T) {
	wfCtx := newTestWorkflowContext()
	ctrl := NewController(wfCtx)

	wfCtx.channels[SignalProvidePermission].ch <- PermissionGrant{ThreadID: "t1", Permission: "web_search", Granted: true}
	grant, err := ctrl.WaitPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, grant.Granted)
}

func TestController_NilSafety(t *testing.T) {
	var ctrl *Controller
	_, ok := ctrl.PollPause()
	assert.False(t, ok)
	_, err := ctrl.WaitResume(context.Background())
	assert.Error(t, err)
	_, err = ctrl.WaitPermission(context.Background())
	assert.Error(t, err)
}
