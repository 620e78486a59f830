package registry

import (
	"sync"

	"github.com/stagedoor-ui/stagedoor/internal/errors"
	"github.com/stagedoor-ui/stagedoor/internal/logging"
	"github.com/stagedoor-ui/stagedoor/internal/request"
)

// InitializerHook is the process-wide coordinator for deferred controller
// initializers. It is satisfied by the hook package's Hook.
type InitializerHook interface {
	// Add registers an initializer for an outstanding request code.
	Add(code request.Code, init request.Initializer)

	// Cancel removes an initializer whose launch failed synchronously.
	Cancel(code request.Code)
}

// LaunchFunc starts the platform-level launch for an allocated request code.
// It runs synchronously inside Begin; an error aborts the operation and is
// returned to the caller directly.
type LaunchFunc func(code request.Code) error

// AbortFunc asks the platform to abort the screen launched with the given
// code. Abort is advisory: the ticket still resolves through the normal
// platform result path.
type AbortFunc func(code request.Code)

// Config holds required dependencies for creating a Registry.
type Config struct {
	// Codes is the shared request-code allocator. Required.
	Codes *request.Allocator

	// Hook is the shared deferred-initializer coordinator. Optional; when
	// nil, initializers passed to Begin are rejected.
	Hook InitializerHook

	// Abort is the platform abort primitive used for cancellation.
	// Optional; when nil, cancellation signals are ignored.
	Abort AbortFunc

	// Logger is used for diagnostics. Optional.
	Logger *logging.Logger
}

// Registry tracks the outstanding start-for-result operations of a single
// retained controller. It owns the tickets and the flush queue; the shared
// code allocator and initializer hook are process-wide and passed in.
//
// Registry is safe for concurrent use; lifecycle callbacks and awaiting
// callers live on different goroutines.
type Registry struct {
	codes  *request.Allocator
	hook   InitializerHook
	abort  AbortFunc
	logger *logging.Logger

	mu      sync.Mutex
	tickets map[request.Code]*request.Ticket
	flushQ  []*request.Ticket
}

// New creates a Registry. The allocator is required; everything else in the
// config is optional.
func New(cfg Config) *Registry {
	if cfg.Codes == nil {
		panic("registry: Config.Codes is required")
	}
	return &Registry{
		codes:   cfg.Codes,
		hook:    cfg.Hook,
		abort:   cfg.Abort,
		logger:  cfg.Logger,
		tickets: make(map[request.Code]*request.Ticket),
	}
}

// Begin starts one asynchronous start-for-result operation.
//
// It allocates the next request code, records a ticket for it, registers the
// initializer (if any) with the shared hook, and invokes launch with the
// code so the caller can tag its platform launch request. The returned
// awaitable resolves with the final result once the platform has reported
// completion and a resume flush has run.
//
// A launch error rolls the ticket back completely and is returned as-is.
// Supplying an initializer to a Registry built without a hook is a
// configuration error; Begin rejects it rather than drop the initializer.
func (r *Registry) Begin(launch LaunchFunc, opts ...Option) (*request.Await, error) {
	options := applyOptions(opts)

	if options.init != nil && r.hook == nil {
		return nil, errors.NewValidationError("initializer", "registry has no hook")
	}

	code, err := r.codes.Next()
	if err != nil {
		return nil, err
	}

	tk := request.NewTicket(code, options.init)

	r.mu.Lock()
	r.tickets[code] = tk
	r.mu.Unlock()

	if options.init != nil {
		r.hook.Add(code, options.init)
	}

	if err := launch(code); err != nil {
		r.mu.Lock()
		delete(r.tickets, code)
		r.mu.Unlock()
		if options.init != nil {
			r.hook.Cancel(code)
		}
		return nil, err
	}

	if options.ctx != nil && r.abort != nil {
		go r.watchCancellation(options, tk)
	}

	r.logger.Debug("launch began", "request_code", int64(code))
	return tk.Await(), nil
}

// watchCancellation arms advisory cancellation: when the caller's context is
// done before the result arrives, ask the platform to abort the launched
// screen. The ticket itself is never resolved here; whatever result the
// platform eventually reports flows through Deliver as usual.
func (r *Registry) watchCancellation(options beginOptions, tk *request.Ticket) {
	select {
	case <-options.ctx.Done():
		if tk.Await().Resolved() {
			return
		}
		r.logger.Debug("cancellation requested", "request_code", int64(tk.Code))
		r.abort(tk.Code)
	case <-tk.Await().Done():
	}
}

// Deliver accepts the raw platform result for a request code.
//
// The ticket is removed from the outstanding set immediately and staged on
// the flush queue; the caller's awaitable is NOT resolved here. A code with
// no outstanding ticket is a late, duplicate, or foreign result and is
// ignored.
func (r *Registry) Deliver(code request.Code, status request.Status, extras request.Bundle) {
	r.mu.Lock()
	tk, ok := r.tickets[code]
	if !ok {
		r.mu.Unlock()
		r.logger.Debug("result for unknown request code ignored",
			"request_code", int64(code),
			"status", status.String())
		return
	}
	delete(r.tickets, code)
	tk.Complete(status, extras)
	r.flushQ = append(r.flushQ, tk)
	r.mu.Unlock()

	r.logger.Debug("result staged for flush",
		"request_code", int64(code),
		"status", status.String())
}

// Flush resolves every staged ticket, in the order their results arrived,
// and clears the queue. The owning host calls this on each resume, which is
// the earliest point at which waiting callers may safely observe the screen.
func (r *Registry) Flush() {
	r.mu.Lock()
	queue := r.flushQ
	r.flushQ = nil
	r.mu.Unlock()

	for _, tk := range queue {
		tk.Flush()
		r.logger.Debug("result flushed", "request_code", int64(tk.Code))
	}
}

// Outstanding returns the number of tickets still waiting for a platform
// result.
func (r *Registry) Outstanding() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tickets)
}

// Staged returns the number of resolved tickets waiting for the next flush.
func (r *Registry) Staged() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.flushQ)
}
