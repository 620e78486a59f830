package request

import "context"

// Await is a single-resolution promise for the result of one launched screen.
// It is handed to the caller by the registry and resolved exactly once, from
// the resume flush. Await is safe for concurrent use: any number of
// goroutines may Wait on it.
type Await struct {
	// done is closed exactly once, after result is set.
	done   chan struct{}
	result Result
}

// NewAwait creates an unresolved Await.
func NewAwait() *Await {
	return &Await{done: make(chan struct{})}
}

// Resolve completes the awaitable with the given result and wakes all
// waiters. Resolving twice is a bookkeeping bug in the caller and panics.
func (a *Await) Resolve(res Result) {
	select {
	case <-a.done:
		panic("request: Await resolved twice")
	default:
	}
	a.result = res
	close(a.done)
}

// Wait blocks until the awaitable is resolved or the context is done.
// It returns the context error on cancellation; the operation itself keeps
// running and the result, if it ever arrives, is discarded with the Await.
func (a *Await) Wait(ctx context.Context) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-a.done:
		return a.result, nil
	}
}

// Done returns a channel that is closed once the awaitable is resolved.
func (a *Await) Done() <-chan struct{} {
	return a.done
}

// Resolved reports whether the awaitable has been resolved.
func (a *Await) Resolved() bool {
	select {
	case <-a.done:
		return true
	default:
		return false
	}
}
