// Package workflow implements the workflow engine: a directed graph of
// named nodes with conditional edges, checkpointed after every transition,
// supporting static interrupt-before points where execution halts and
// awaits an external resume.
//
// The graph-walking loop here is the deterministic part of execution; it
// can run directly (as it does under the in-memory engine, and as the
// default for tests) or be hosted inside a durable engine.WorkflowFunc where
// every node call is wrapped in engine.WorkflowContext.ExecuteActivity, so a
// replaying backend like Temporal never re-executes a node's side effects on
// replay. See runtime/engine for that adapter boundary.
package workflow

import (
	"context"
	"fmt"

	"github.com/adamsih300u/orchestrator/runtime/checkpoint"
	"github.com/adamsih300u/orchestrator/runtime/toolerrors"
)

// End is the sentinel destination label that terminates a turn.
const End = "__end__"

// InterruptEvent is the sentinel event type Stream emits when execution
// halts at an interrupt-before node instead of running it.
const InterruptEvent = "__interrupt__"

// State is the turn's mutable working state. Node return values are
// partial states merged key-by-key into this map: a node returning
// {"k": v} leaves every other key untouched (last-write-wins per key, not a
// deep merge).
type State map[string]any

// Node is a named unit of work. It receives the state accumulated so far
// and returns the partial state to merge in.
type Node func(ctx context.Context, state State) (State, error)

// Router is a pure function from state to the label of the next edge to
// follow. Used for conditional branching (one node fanning out to several
// possible next nodes).
type Router func(state State) string

// conditionalEdge binds a router to a from-node and the label→target map
// the router's return value selects from.
type conditionalEdge struct {
	router  Router
	targets map[string]string
}

// Graph is a workflow definition: nodes, a fixed entry point, simple and
// conditional edges, a set of interrupt-before node names, and a recursion
// bound. Built once per agent at startup and reused, stateless, across
// every turn — all mutable per-turn state lives in the checkpointed State.
type Graph struct {
	entry           string
	nodes           map[string]Node
	edges           map[string]string
	conditional     map[string]conditionalEdge
	interruptBefore map[string]bool
	checkpointer    checkpoint.Store
	recursionLimit  int
}

// New constructs an empty Graph. Use AddNode, AddEdge and AddConditionalEdge
// to build it up and SetEntry to name the first node, then run it with
// Invoke or Stream.
func New(checkpointer checkpoint.Store) *Graph {
	return &Graph{
		nodes:           make(map[string]Node),
		edges:           make(map[string]string),
		conditional:     make(map[string]conditionalEdge),
		interruptBefore: make(map[string]bool),
		checkpointer:    checkpointer,
		recursionLimit:  50,
	}
}

// AddNode registers a node under name.
func (g *Graph) AddNode(name string, n Node) *Graph {
	g.nodes[name] = n
	return g
}

// SetEntry designates the first node executed on a fresh turn.
func (g *Graph) SetEntry(name string) *Graph {
	g.entry = name
	return g
}

// AddEdge adds an unconditional edge from one node to the next (or to End).
func (g *Graph) AddEdge(from, to string) *Graph {
	g.edges[from] = to
	return g
}

// AddConditionalEdge adds a router-driven edge: after from completes, router
// is evaluated against the accumulated state and its returned label selects
// the next node from targets (or End).
func (g *Graph) AddConditionalEdge(from string, router Router, targets map[string]string) *Graph {
	g.conditional[from] = conditionalEdge{router: router, targets: targets}
	return g
}

// SetInterruptBefore marks name as an interrupt-before node: the engine will
// not execute it the first time it is reached, instead checkpointing and
// halting.
func (g *Graph) SetInterruptBefore(name string) *Graph {
	g.interruptBefore[name] = true
	return g
}

// SetRecursionLimit overrides the default bound of 50 node executions per
// invocation.
func (g *Graph) SetRecursionLimit(n int) *Graph {
	g.recursionLimit = n
	return g
}

// Config identifies the thread a turn executes against and optionally pins
// a prior checkpoint version to branch from.
type Config struct {
	ThreadID     string
	CheckpointID string
}

// GetState returns the latest checkpoint for the thread: {values, next,
// checkpoint_id}. Returns a zero-value Checkpoint with no error when no
// checkpoint exists yet.
func (g *Graph) GetState(ctx context.Context, cfg Config) (checkpoint.Checkpoint, error) {
	cp, err := g.checkpointer.Latest(ctx, cfg.ThreadID)
	if err != nil {
		if err == checkpoint.ErrNotFound {
			return checkpoint.Checkpoint{ThreadID: cfg.ThreadID}, nil
		}
		return checkpoint.Checkpoint{}, toolerrors.Wrap(toolerrors.KindTransport, err)
	}
	return cp, nil
}

// UpdateState writes a new checkpoint whose values are the merge of the
// current values and partial, without advancing the `next` execution
// pointer. Used for approval-only resumes that inject a state update
// without a new user turn.
func (g *Graph) UpdateState(ctx context.Context, cfg Config, partial State) error {
	_, err := g.checkpointer.UpdateState(ctx, cfg.ThreadID, map[string]any(partial))
	return err
}

// Event is emitted by Stream: either a node's completion (Node set, State
// holding the values after that node ran) or the InterruptEvent terminal
// event (Node == InterruptEvent) when an interrupt-before node halts the
// turn.
type Event struct {
	Node  string
	State State
}

// Invoke runs the graph from cfg's checkpoint (or the entry node, for a
// fresh thread) until it reaches End or an interrupt-before node, returning
// the final accumulated state. input, when non-nil, is merged into state
// before the first node of this invocation runs (a new user turn); nil
// input resumes purely from checkpointed state (an approval-only resume).
func (g *Graph) Invoke(ctx context.Context, cfg Config, input State) (State, error) {
	var final State
	for ev := range g.stream(ctx, cfg, input) {
		if ev.err != nil {
			return nil, ev.err
		}
		final = ev.state
		if ev.done {
			break
		}
	}
	return final, nil
}

// Stream runs the graph like Invoke but yields an Event per node completion,
// including a terminal InterruptEvent when execution halts at an
// interrupt-before node.
func (g *Graph) Stream(ctx context.Context, cfg Config, input State) (<-chan Event, error) {
	out := make(chan Event)
	go func() {
		defer close(out)
		for ev := range g.stream(ctx, cfg, input) {
			if ev.err != nil {
				return
			}
			if ev.interrupted {
				out <- Event{Node: InterruptEvent, State: ev.state}
				return
			}
			out <- Event{Node: ev.node, State: ev.state}
		}
	}()
	return out, nil
}

// internalEvent carries stream-loop bookkeeping that Invoke and Stream both
// need but that shouldn't leak into the public Event shape.
type internalEvent struct {
	node        string
	state       State
	interrupted bool
	done        bool
	err         error
}

func (g *Graph) stream(ctx context.Context, cfg Config, input State) <-chan internalEvent {
	out := make(chan internalEvent)
	go func() {
		defer close(out)

		cp, err := g.GetState(ctx, cfg)
		if err != nil {
			out <- internalEvent{err: err}
			return
		}

		values := State(cp.Values)
		if values == nil {
			values = State{}
		}
		current := g.resumeFrom(cp, input)
		// resumingIntoInterrupt is true only for the very first node of this
		// invocation when that node is exactly the one a prior turn halted
		// at: the resume must execute it rather than re-interrupting.
		resumingIntoInterrupt := len(cp.Next) > 0 && cp.Next[0] == current
		if input != nil {
			for k, v := range input {
				values[k] = v
			}
		}

		steps := 0
		for current != End {
			if steps >= g.recursionLimit {
				out <- internalEvent{err: toolerrors.New(toolerrors.KindFatal, "FATAL: recursion exceeded")}
				return
			}
			steps++

			skipInterrupt := steps == 1 && resumingIntoInterrupt
			if g.interruptBefore[current] && !skipInterrupt {
				if _, err := g.checkpointer.Put(ctx, cfg.ThreadID, map[string]any(values), []string{current}); err != nil {
					out <- internalEvent{err: toolerrors.Wrap(toolerrors.KindTransport, err)}
					return
				}
				out <- internalEvent{interrupted: true, state: values}
				return
			}

			node, ok := g.nodes[current]
			if !ok {
				out <- internalEvent{err: fmt.Errorf("workflow: node %q not registered", current)}
				return
			}

			partial, err := node(ctx, values)
			if err != nil {
				out <- internalEvent{err: err}
				return
			}
			for k, v := range partial {
				values[k] = v
			}

			next, err := g.next(current, values)
			if err != nil {
				out <- internalEvent{err: err}
				return
			}

			nextCheckpoint := []string{next}
			if next == End {
				nextCheckpoint = nil
			}
			if _, err := g.checkpointer.Put(ctx, cfg.ThreadID, map[string]any(values), nextCheckpoint); err != nil {
				out <- internalEvent{err: toolerrors.Wrap(toolerrors.KindTransport, err)}
				return
			}

			out <- internalEvent{node: current, state: values}
			current = next
		}
		out <- internalEvent{done: true, state: values}
	}()
	return out
}

// resumeFrom determines the node to execute next: the node recorded in the
// checkpoint's Next (whether or not input carries a new user message), or
// the entry node when nothing is pending, i.e. on a fresh thread or after a
// turn that ran to End.
func (g *Graph) resumeFrom(cp checkpoint.Checkpoint, input State) string {
	if len(cp.Next) > 0 {
		return cp.Next[0]
	}
	return g.entry
}

func (g *Graph) next(from string, state State) (string, error) {
	if cond, ok := g.conditional[from]; ok {
		label := cond.router(state)
		to, ok := cond.targets[label]
		if !ok {
			return "", fmt.Errorf("workflow: router at %q returned unknown label %q", from, label)
		}
		return to, nil
	}
	if to, ok := g.edges[from]; ok {
		return to, nil
	}
	return End, nil
}
