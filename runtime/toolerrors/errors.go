// Package toolerrors provides the structured error taxonomy used across the
// orchestrator: one Error type whose Kind is config, transport, tool,
// llm_parse or fatal. Every kind preserves causal chains via errors.Is/As
// while remaining serializable inside a workflow checkpoint — node
// failures become state fields, never panics that escape the engine.
package toolerrors

import (
	"errors"
	"fmt"
)

// Kind classifies a structured error for error-handling policy. It is not
// a Go type hierarchy; every error kind is represented by the single Error
// struct below, discriminated by Kind.
type Kind string

const (
	// KindConfig indicates required environment or persona configuration was
	// missing. Callers should emit a warning chunk and proceed with defaults.
	KindConfig Kind = "config"
	// KindTransport indicates the tool service or checkpoint store was
	// unreachable or the connection was closed. Triggers the single-shot
	// retry/recovery policy callers apply for transport errors.
	KindTransport Kind = "transport"
	// KindTool indicates a tool call returned a logical failure. Callers
	// degrade to an empty result and continue.
	KindTool Kind = "tool"
	// KindLLMParse indicates a JSON/schema validation failure on an LLM
	// response. Callers must apply the documented conservative fallback.
	KindLLMParse Kind = "llm_parse"
	// KindFatal indicates an exception escaped a node and no recovery
	// applies; the turn fails and the prior checkpoint is retained.
	KindFatal Kind = "fatal"
)

// Error represents a structured failure that preserves message, kind, and
// causal context while still implementing the standard error interface.
// Errors may be nested via Cause to retain rich diagnostics across retries.
type Error struct {
	Kind    Kind
	Message string
	Cause   *Error
}

// New constructs an Error of the given kind with the provided message.
func New(kind Kind, message string) *Error {
	if message == "" {
		message = string(kind) + " error"
	}
	return &Error{Kind: kind, Message: message}
}

// Wrap converts an arbitrary error into an Error chain of the given kind. If
// err already is or wraps an *Error, that *Error is returned unchanged and
// kind is ignored.
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: kind, Message: err.Error(), Cause: wrapUnwrap(err)}
}

func wrapUnwrap(err error) *Error {
	u := errors.Unwrap(err)
	if u == nil {
		return nil
	}
	var e *Error
	if errors.As(u, &e) {
		return e
	}
	return &Error{Kind: KindFatal, Message: u.Error(), Cause: wrapUnwrap(u)}
}

// Errorf formats according to a format specifier and returns an *Error of the
// given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap returns the causal error, supporting errors.Is/As.
func (e *Error) Unwrap() error {
	if e == nil || e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target matches this error's kind, enabling
// errors.Is(err, toolerrors.New(toolerrors.KindTransport, "")).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Retryable reports whether the error kind is eligible for the single-shot
// connection recovery policy.
func (e *Error) Retryable() bool {
	return e != nil && e.Kind == KindTransport
}
