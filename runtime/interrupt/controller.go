// Package interrupt provides workflow signal handling for pausing and
// resuming orchestrator runs at a graph's interrupt-before nodes. It exposes
// a Controller that workflow handlers use to react to external pause/resume
// requests delivered as engine signals, and a Redis-backed fan-out so a
// pause or resume raised against one replica reaches whichever replica
// owns the run's workflow execution.
package interrupt

import (
	"context"
	"errors"

	"github.com/adamsih300u/orchestrator/runtime/engine"
)

const (
	// SignalPause asks a running workflow to suspend at its next
	// checkpoint boundary.
	SignalPause = "orchestrator.runtime.pause"
	// SignalResume delivers a human-in-the-loop resume payload to a
	// workflow paused at an interrupt-before node.
	SignalResume = engine.ResumeSignalName
	// SignalProvidePermission delivers a granted/denied decision for a
	// pending permission gate (web_search, web_crawl, file_write,
	// external_api).
	SignalProvidePermission = "orchestrator.runtime.provide.permission"
)

type (
	// PauseRequest carries metadata attached to a pause signal.
	PauseRequest struct {
		ThreadID    string
		Reason      string
		RequestedBy string
	}

	// ResumeRequest carries the payload a human-in-the-loop response
	// injects back into a paused graph's state.
	ResumeRequest struct {
		ThreadID string
		Values   map[string]any
	}

	// PermissionGrant carries a user's decision on a pending permission
	// gate, keyed by the same permission name shared_memory tracks.
	PermissionGrant struct {
		ThreadID   string
		Permission string
		Granted    bool
	}

	// Controller drains runtime interrupt signals and exposes helpers a
	// workflow handler calls to react to pause/resume requests without
	// depending on a specific engine's native signal API.
	Controller struct {
		pauseCh      engine.SignalChannel
		resumeCh     engine.SignalChannel
		permissionCh engine.SignalChannel
	}
)

// NewController builds a controller wired to the workflow context's signal
// channels.
func NewController(wfCtx engine.WorkflowContext) *Controller {
	return &Controller{
		pauseCh:      wfCtx.SignalChannel(SignalPause),
		resumeCh:     wfCtx.SignalChannel(SignalResume),
		permissionCh: wfCtx.SignalChannel(SignalProvidePermission),
	}
}

// PollPause attempts to dequeue a pause request without blocking.
func (c *Controller) PollPause() (PauseRequest, bool) {
	if c == nil || c.pauseCh == nil {
		return PauseRequest{}, false
	}
	var req PauseRequest
	if !c.pauseCh.ReceiveAsync(&req) {
		return PauseRequest{}, false
	}
	return req, true
}

// WaitResume blocks until a resume payload is delivered to a run paused at
// an interrupt-before node.
func (c *Controller) WaitResume(ctx context.Context) (ResumeRequest, error) {
	if c == nil || c.resumeCh == nil {
		return ResumeRequest{}, errors.New("interrupt: resume channel unavailable")
	}
	var req ResumeRequest
	if err := c.resumeCh.Receive(ctx, &req); err != nil {
		return ResumeRequest{}, err
	}
	return req, nil
}

// WaitPermission blocks until a permission decision is delivered for a run
// paused on a permission gate.
func (c *Controller) WaitPermission(ctx context.Context) (PermissionGrant, error) {
	if c == nil || c.permissionCh == nil {
		return PermissionGrant{}, errors.New("interrupt: permission channel unavailable")
	}
	var grant PermissionGrant
	if err := c.permissionCh.Receive(ctx, &grant); err != nil {
		return PermissionGrant{}, err
	}
	return grant, nil
}
