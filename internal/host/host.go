package host

import (
	"sync"

	"github.com/stagedoor-ui/stagedoor/internal/platform"
	"github.com/stagedoor-ui/stagedoor/internal/registry"
	"github.com/stagedoor-ui/stagedoor/internal/request"
)

// ControllerFactory constructs the retained controller for a host. The
// returned value must embed Controller. The factory runs inside the retained
// store's find-or-create and must not touch the store itself.
type ControllerFactory func() any

// Config holds the shared dependencies for every host of one screen kind.
type Config struct {
	// Key prefixes the retained-store tag for the controller. Required,
	// and unique per screen kind.
	Key string

	// Codes is the process-wide request-code allocator. Required.
	Codes *request.Allocator

	// Hook is the process-wide deferred-initializer coordinator. Optional;
	// without it, StartHostForResult launches are rejected.
	Hook registry.InitializerHook

	// New creates the controller the first time a stack entry's host is
	// created. Required.
	New ControllerFactory
}

// embedsController is satisfied by any value embedding Controller.
type embedsController interface {
	base() *Controller
}

// Optional lifecycle interfaces a controller may implement.
type (
	// Attacher is notified when the hosting screen's window attaches.
	Attacher interface{ OnAttached() }

	// Resumer is notified after each resume, once staged results have
	// been flushed.
	Resumer interface{ OnResumed() }

	// Pauser is notified when the hosting screen pauses.
	Pauser interface{ OnPaused() }

	// IntentReceiver is notified when a single-top launch re-targets the
	// hosting screen.
	IntentReceiver interface{ OnNewIntent(intent platform.Intent) }

	// Finisher is notified once, when the hosting screen is torn down for
	// good rather than recreated.
	Finisher interface{ OnFinished() }
)

// Host is the screen-side half of the host/controller pair. A fresh Host
// object is constructed for every creation, including recreations; the
// controller it attaches to persists across all of them.
type Host struct {
	cfg   Config
	env   platform.Env
	tag   string
	ctrl  any
	base  *Controller
	fresh bool

	mu       sync.Mutex
	observer func(controller any)
	obsGen   int
}

// New creates an unattached Host. Most callers want Factory instead.
func New(cfg Config) *Host {
	if cfg.Key == "" {
		panic("host: Config.Key is required")
	}
	if cfg.Codes == nil {
		panic("host: Config.Codes is required")
	}
	if cfg.New == nil {
		panic("host: Config.New is required")
	}
	return &Host{cfg: cfg}
}

// Factory returns a platform screen factory producing hosts for cfg,
// suitable for Stage.RegisterKind.
func Factory(cfg Config) platform.Factory {
	return func() platform.Screen { return New(cfg) }
}

// Controller returns the attached controller, or nil before Create.
func (h *Host) Controller() any {
	return h.ctrl
}

// OnControllerLoaded registers fn to run once if this host creates its
// controller fresh. At most one observer is held; registering again replaces
// the previous one. fn never runs from inside this call.
func (h *Host) OnControllerLoaded(fn func(controller any)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observer = fn
	h.obsGen++
	gen := h.obsGen
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.obsGen == gen {
			h.observer = nil
		}
	}
}

// Create locates or creates the retained controller and binds it to this
// host. The controller-loaded observer fires only when the controller was
// created fresh, never on reattachment.
func (h *Host) Create(env platform.Env) {
	h.env = env
	h.tag = h.cfg.Key + "/" + env.ScreenID()

	v, created := env.Retained().FindOrCreate(h.tag, func() any {
		return h.cfg.New()
	})
	ctrl, ok := v.(embedsController)
	if !ok {
		panic("host: controller for key " + h.cfg.Key + " does not embed host.Controller")
	}
	h.ctrl = v
	h.base = ctrl.base()
	h.fresh = created
	h.base.bind(h)

	if created {
		h.fireLoaded()
	}
}

// fireLoaded invokes the loaded observer outside the lock; the observer may
// start launches of its own.
func (h *Host) fireLoaded() {
	h.mu.Lock()
	fn := h.observer
	h.observer = nil
	h.obsGen++
	h.mu.Unlock()
	if fn != nil {
		fn(h.ctrl)
	}
}

func (h *Host) Attach() {
	if a, ok := h.ctrl.(Attacher); ok {
		a.OnAttached()
	}
}

// Resume flushes results staged while the screen was away, then notifies the
// controller. The flush ordering is the whole point of the host: waiting
// callers wake only once the screen is interactable again.
func (h *Host) Resume() {
	h.base.Registry().Flush()
	if r, ok := h.ctrl.(Resumer); ok {
		r.OnResumed()
	}
}

func (h *Host) Pause() {
	if p, ok := h.ctrl.(Pauser); ok {
		p.OnPaused()
	}
}

func (h *Host) NewIntent(intent platform.Intent) {
	if r, ok := h.ctrl.(IntentReceiver); ok {
		r.OnNewIntent(intent)
	}
}

// ScreenResult stages the raw platform result. The caller's awaitable is not
// resolved until the next Resume flushes the queue.
func (h *Host) ScreenResult(code request.Code, status request.Status, extras request.Bundle) {
	h.base.Registry().Deliver(code, status, extras)
}

// Destroy detaches the controller. On a real teardown the controller is
// evicted from the retained store; on a recreation it stays put for the next
// host object to find.
func (h *Host) Destroy() {
	if h.env.Finishing() {
		if f, ok := h.ctrl.(Finisher); ok {
			f.OnFinished()
		}
		h.env.Retained().Remove(h.tag)
	}
	h.base.unbind(h)
}
