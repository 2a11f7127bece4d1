// Package engine defines the workflow engine abstractions and adapters the
// graph executor runs on top of. It provides a pluggable interface so the
// same compiled graph can target Temporal, in-memory execution, or another
// durable backend without modification.
package engine

import (
	"context"
	"time"

	"github.com/adamsih300u/orchestrator/runtime/telemetry"
)

type (
	// Engine abstracts workflow registration and execution so adapters
	// (Temporal, in-memory, or custom) can be swapped without touching the
	// graph executor. Implementations translate these generic types into
	// backend-specific primitives.
	Engine interface {
		// RegisterWorkflow registers a workflow definition with the engine.
		// Called during service initialization before starting workers.
		// Returns an error if the workflow name is already registered.
		RegisterWorkflow(ctx context.Context, def WorkflowDefinition) error

		// RegisterActivity registers an activity definition with the engine.
		// Activities are short-lived tasks invoked from workflows. Must be
		// called during initialization before starting workers.
		RegisterActivity(ctx context.Context, def ActivityDefinition) error

		// StartWorkflow initiates a new workflow execution and returns a
		// handle for interacting with it. req.ID must be unique for the
		// engine instance.
		StartWorkflow(ctx context.Context, req WorkflowStartRequest) (WorkflowHandle, error)
	}

	// WorkflowDefinition binds a workflow handler to a logical name and
	// default queue.
	WorkflowDefinition struct {
		// Name is the logical identifier registered with the engine (e.g.
		// "ResearchWorkflow", "OrgWorkflow").
		Name string
		// TaskQueue is the default queue new workflows are scheduled on.
		TaskQueue string
		// Handler is the workflow function the engine invokes.
		Handler WorkflowFunc
	}

	// WorkflowFunc is the graph-walking entry point. It must be
	// deterministic: given the same inputs and the same sequence of
	// activity results, it must replay to the same decisions.
	WorkflowFunc func(ctx WorkflowContext, input any) (any, error)

	// WorkflowContext exposes engine operations to workflow handlers within
	// the deterministic execution environment of a workflow. It wraps
	// engine-specific contexts (Temporal workflow.Context, in-memory
	// contexts) behind one uniform API.
	//
	// Implementations must ensure deterministic replay: operations that
	// interact with the engine (ExecuteActivity, SignalChannel) must
	// produce deterministic results when replayed. Direct I/O, random
	// number generation, or system time access inside a workflow violates
	// determinism and causes workflow failures on engines that replay.
	//
	// WorkflowContext is bound to a single execution and must not be shared
	// across goroutines.
	WorkflowContext interface {
		// Context returns the Go context for the workflow. On replaying
		// engines this is a special replay-aware context; use it for
		// activity execution and cancellation propagation.
		Context() context.Context

		// WorkflowID returns the unique identifier for this execution.
		WorkflowID() string

		// RunID returns the engine-assigned run identifier.
		RunID() string

		// ExecuteActivity schedules an activity and blocks for its result,
		// populating result with the return value.
		ExecuteActivity(ctx context.Context, req ActivityRequest, result any) error

		// ExecuteActivityAsync schedules an activity without blocking and
		// returns a Future, enabling parallel activity execution.
		ExecuteActivityAsync(ctx context.Context, req ActivityRequest) (Future, error)

		// SignalChannel returns a channel for the given signal name.
		// Workflow code polls or blocks on it to react to external events
		// (resume-from-interrupt payloads delivered out of band).
		SignalChannel(name string) SignalChannel

		// Logger returns a logger scoped to this workflow execution.
		Logger() telemetry.Logger

		// Metrics returns a metrics recorder scoped to this workflow.
		Metrics() telemetry.Metrics

		// Tracer returns a tracer for spans within the workflow.
		Tracer() telemetry.Tracer

		// Now returns the current workflow time in a deterministic manner.
		Now() time.Time
	}

	// Future represents a pending activity result.
	Future interface {
		// Get blocks until the activity completes and populates result.
		// Calling Get multiple times returns the same result/error.
		Get(ctx context.Context, result any) error

		// IsReady reports whether Get will not block.
		IsReady() bool
	}

	// ActivityDefinition registers an activity handler with optional
	// defaults. Activities are stateless, short-lived tasks invoked from
	// workflows and are the only place node I/O (LLM calls, tool-service
	// RPCs, checkpoint writes) is allowed to happen on replaying engines.
	ActivityDefinition struct {
		Name    string
		Handler ActivityFunc
		Options ActivityOptions
	}

	// ActivityFunc handles an activity invocation. Unlike workflows,
	// activities may perform side effects.
	ActivityFunc func(ctx context.Context, input any) (any, error)

	// ActivityOptions configures retry and timeout behavior for an
	// activity. Zero-valued fields mean the engine applies its defaults.
	ActivityOptions struct {
		Queue       string
		RetryPolicy RetryPolicy
		Timeout     time.Duration
	}

	// WorkflowStartRequest describes how to launch a workflow execution.
	WorkflowStartRequest struct {
		// ID is the workflow identifier; unique within the engine scope.
		// The orchestrator derives this from the thread ID (user_id,
		// conversation_id).
		ID string
		// Workflow names the registered WorkflowDefinition to execute.
		Workflow string
		// TaskQueue selects the queue to schedule on.
		TaskQueue string
		// Input is the payload passed to the workflow handler.
		Input any
		// Memo stores small diagnostic payloads alongside the execution.
		Memo map[string]any
		// RetryPolicy controls restarts of the start attempt itself, not
		// of activities within the workflow.
		RetryPolicy RetryPolicy
	}

	// ActivityRequest contains what's needed to schedule an activity from a
	// workflow.
	ActivityRequest struct {
		Name        string
		Input       any
		Queue       string
		RetryPolicy RetryPolicy
		Timeout     time.Duration
	}

	// WorkflowHandle allows callers to interact with a running workflow.
	WorkflowHandle interface {
		// Wait blocks until the workflow completes, populating result.
		Wait(ctx context.Context, result any) error

		// Signal sends an asynchronous message to the workflow, used to
		// deliver a human-in-the-loop resume payload to a paused
		// interrupt-before node.
		Signal(ctx context.Context, name string, payload any) error

		// Cancel requests cancellation of the workflow.
		Cancel(ctx context.Context) error
	}

	// RetryPolicy defines retry semantics shared by workflows and
	// activities. Zero-valued fields mean the engine uses its defaults.
	RetryPolicy struct {
		MaxAttempts        int
		InitialInterval    time.Duration
		BackoffCoefficient float64
	}

	// SignalChannel exposes workflow signal delivery in an engine-agnostic
	// way.
	SignalChannel interface {
		// Receive blocks until a signal value is delivered and decodes it
		// into dest.
		Receive(ctx context.Context, dest any) error
		// ReceiveAsync attempts a non-blocking receive, returning true when
		// dest was populated.
		ReceiveAsync(dest any) bool
	}
)

// ResumeSignalName is the signal name used to deliver human-in-the-loop
// resume payloads to a workflow paused at an interrupt-before node.
const ResumeSignalName = "__resume__"
