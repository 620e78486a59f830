package host

import (
	"sync"

	"github.com/stagedoor-ui/stagedoor/internal/errors"
	"github.com/stagedoor-ui/stagedoor/internal/logging"
	"github.com/stagedoor-ui/stagedoor/internal/platform"
	"github.com/stagedoor-ui/stagedoor/internal/registry"
	"github.com/stagedoor-ui/stagedoor/internal/request"
)

// Controller is the retained half of the host/controller pair. Applications
// embed it in their own controller types; it survives every recreation of
// the hosting screen and carries the pending-operation registry across them.
//
// StartForResult and Finish must be called on the stage's loop goroutine,
// which is where every lifecycle callback and initializer already runs.
// Other goroutines reach the loop with Env().Post.
type Controller struct {
	mu   sync.Mutex
	host *Host
	env  platform.Env
	reg  *registry.Registry
}

func (c *Controller) base() *Controller { return c }

// bind attaches the controller to a (possibly new) host object. The registry
// is created on first bind and kept for the controller's lifetime.
func (c *Controller) bind(h *Host) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.host = h
	c.env = h.env
	if c.reg == nil {
		c.reg = registry.New(registry.Config{
			Codes:  h.cfg.Codes,
			Hook:   h.cfg.Hook,
			Abort:  c.abortCode,
			Logger: h.env.Logger(),
		})
	}
}

// unbind detaches the controller from h. A stale unbind from an older host
// object is ignored.
func (c *Controller) unbind(h *Host) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.host == h {
		c.host = nil
		c.env = nil
	}
}

// abortCode runs on the registry's cancellation goroutine and marshals the
// abort onto the stage loop.
func (c *Controller) abortCode(code request.Code) {
	c.mu.Lock()
	env := c.env
	c.mu.Unlock()
	if env == nil {
		return
	}
	// A stopped stage has nothing left to abort.
	_ = env.Post(func() { env.Abort(code) })
}

// Env returns the hosting screen's platform handle, or nil while the
// controller is detached mid-recreation.
func (c *Controller) Env() platform.Env {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.env
}

// Registry returns the controller's pending-operation registry.
func (c *Controller) Registry() *registry.Registry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reg
}

// Logger returns the hosting screen's logger. Nil-safe while detached.
func (c *Controller) Logger() *logging.Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.env == nil {
		return nil
	}
	return c.env.Logger()
}

// StartForResult launches intent above the hosting screen and returns an
// awaitable for its result. The awaitable resolves after the destination
// finishes AND the hosting screen has resumed; Wait on it from a separate
// goroutine, never from the loop.
func (c *Controller) StartForResult(intent platform.Intent, opts ...registry.Option) (*request.Await, error) {
	c.mu.Lock()
	env, reg := c.env, c.reg
	c.mu.Unlock()
	if env == nil || reg == nil {
		return nil, errors.ErrNotAttached
	}
	return reg.Begin(func(code request.Code) error {
		return env.StartForResult(intent, code)
	}, opts...)
}

// StartHostForResult launches a controller-hosted screen and arranges for
// init to run exactly once with the destination's freshly created
// controller, even if the destination is recreated before its controller
// first appears.
func (c *Controller) StartHostForResult(intent platform.Intent, init request.Initializer, opts ...registry.Option) (*request.Await, error) {
	return c.StartForResult(intent, append(opts, registry.WithInitializer(init))...)
}

// Finish ends the hosting screen with the given result.
func (c *Controller) Finish(status request.Status, extras request.Bundle) error {
	c.mu.Lock()
	env := c.env
	c.mu.Unlock()
	if env == nil {
		return errors.ErrNotAttached
	}
	env.Finish(status, extras)
	return nil
}
