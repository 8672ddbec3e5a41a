package job

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// TemplateData is the handler-facing shape of a payload's parameters,
// produced by Params.TemplateData immediately before invocation.
type TemplateData map[string]any

// Scope is an isolated, disposable bundle of dependency handles created
// fresh for exactly one job's execution. A scope must never be, or be
// derived from, a scope created for the request that enqueued the job:
// by the time the job runs that request has completed and its resources
// have been torn down.
// Version: 1.0
type Scope interface {
	// Close releases every handle owned by the scope.
	Close() error
}

// ScopeFactory produces a new isolated Scope on demand. Implementations
// are owned outside the queue core; the processor only requires that
// each call yields handles with a lifetime independent of any request.
// Version: 1.0
type ScopeFactory interface {
	NewScope(ctx context.Context) (Scope, error)
}

// Handler performs the actual delivery work for one job kind using the
// dependencies held by the provided scope.
// Version: 1.0
type Handler interface {
	Execute(ctx context.Context, target string, data TemplateData, scope Scope) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, target string, data TemplateData, scope Scope) error

// Execute calls the wrapped function.
func (f HandlerFunc) Execute(
	ctx context.Context,
	target string,
	data TemplateData,
	scope Scope,
) error {
	return f(ctx, target, data, scope)
}

// ErrNoHandler is returned by Registry.Resolve when no handler has been
// registered for a job kind. The processor treats it like any other
// handler failure: logged and discarded.
var ErrNoHandler = errors.New("no handler registered for job kind")

// Registry maps job kinds to their handlers. Registration happens once
// at process startup; resolution happens on every job.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register associates a handler with a job kind, replacing any previous
// registration for the same kind.
func (r *Registry) Register(kind string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = handler
}

// Resolve returns the handler registered for kind, or ErrNoHandler.
func (r *Registry) Resolve(kind string) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, kind)
	}
	return handler, nil
}
