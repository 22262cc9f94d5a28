// Package engine owns the embedded scripting runtime.
//
// The process holds exactly one live Engine. It performs the runtime's global
// initialization once and hands out fresh, isolated Contexts, one per
// extraction run. Callers only see the Runtime and Context interfaces; the
// gopher-lua implementation lives in lua.go.
package engine

import (
	"context"
	"errors"
	"sync/atomic"
)

var (
	// ErrAlreadyInitialized is returned when an Engine is constructed while another one is live.
	ErrAlreadyInitialized = errors.New("cannot have multiple scripting engine instances")

	// ErrClosed is returned when a closed Engine is asked for a new context.
	ErrClosed = errors.New("scripting engine is closed")
)

// live is set while an Engine exists.
var live atomic.Bool

// Runtime creates execution contexts.
type Runtime interface {
	// NewContext allocates an isolated global scope. ctx, when cancellable, interrupts running code.
	NewContext(ctx context.Context) (Context, error)
}

// Context is one isolated, single-use global scope.
type Context interface {
	// Install binds host functions and values under a single namespace object.
	Install(namespace string, bindings []Binding) error

	// CompileAndRun compiles source under the given chunk name and runs it.
	// Failures are returned as *Diagnostic.
	CompileAndRun(chunk, source string) error

	// Lookup reads namespace.name and marshals it to a host value:
	// nil when absent, string, float64, bool, []any for sequences or Opaque otherwise.
	Lookup(namespace, name string) (any, error)

	// Close releases the scope. The context must not be used afterwards.
	Close()
}

// Engine is the process-wide lifecycle token for the scripting runtime.
type Engine struct {
	runtime Runtime
	closed  atomic.Bool
}

// New initializes the scripting runtime. It fails with ErrAlreadyInitialized,
// touching nothing, while another Engine is live.
func New() (*Engine, error) {
	if !live.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInitialized
	}

	return &Engine{runtime: initLua()}, nil
}

// NewContext returns a fresh execution context.
func (e *Engine) NewContext(ctx context.Context) (Context, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	return e.runtime.NewContext(ctx)
}

// Close tears the runtime down. All contexts must have been closed before.
// Closing twice is a no-op.
func (e *Engine) Close() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}

	shutdownLua()
	live.Store(false)
}

// Live reports whether an Engine currently exists.
func Live() bool {
	return live.Load()
}
