package registry

import (
	"context"

	"github.com/stagedoor-ui/stagedoor/internal/request"
)

// beginOptions holds per-operation settings collected from Options.
type beginOptions struct {
	ctx  context.Context
	init request.Initializer
}

// Option configures a single Begin operation.
type Option func(*beginOptions)

// WithContext arms advisory cancellation: when ctx is done before the result
// arrives, the platform is asked to abort the launched screen. The operation
// still resolves through the normal result path with whatever status the
// platform reports.
func WithContext(ctx context.Context) Option {
	return func(o *beginOptions) {
		o.ctx = ctx
	}
}

// WithInitializer registers a deferred initializer to run against the
// destination's retained controller once it exists. Requires the registry to
// have been configured with the shared hook.
func WithInitializer(init request.Initializer) Option {
	return func(o *beginOptions) {
		o.init = init
	}
}

// applyOptions folds a list of Options into a beginOptions.
func applyOptions(opts []Option) beginOptions {
	var options beginOptions
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
