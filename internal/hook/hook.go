package hook

import (
	"sync"

	"github.com/stagedoor-ui/stagedoor/internal/event"
	"github.com/stagedoor-ui/stagedoor/internal/logging"
	"github.com/stagedoor-ui/stagedoor/internal/request"
)

// ControllerHost is the capability a screen must expose for deferred
// initialization: it owns exactly one retained controller and can report
// when that controller is newly created.
type ControllerHost interface {
	// OnControllerLoaded registers fn to be invoked when the host's
	// controller is created fresh (not reattached after recreation).
	// fn must never be invoked from inside the registration call.
	// The returned cancel function removes the observer.
	OnControllerLoaded(fn func(controller any)) (cancel func())
}

// entry tracks one pending initializer.
type entry struct {
	init request.Initializer
	// fired guards exactly-once invocation across host recreation churn.
	fired bool
	// cancelLoaded detaches from the previous host instance's loaded
	// notification when a recreation produces a new instance.
	cancelLoaded func()
}

// Hook is the process-wide deferred-initializer coordinator. One Hook is
// shared by every registry in the process, the same way the request-code
// allocator is.
//
// Hook is safe for concurrent use.
type Hook struct {
	bus    *event.Bus
	logger *logging.Logger

	mu      sync.Mutex
	pending map[request.Code]*entry
	count   int
	// sub is non-nil exactly while count > 0.
	sub *event.Subscription
}

// New creates a Hook attached to the given lifecycle bus. The Hook does not
// subscribe until the first initializer is added.
func New(bus *event.Bus, logger *logging.Logger) *Hook {
	return &Hook{
		bus:     bus,
		logger:  logger,
		pending: make(map[request.Code]*entry),
	}
}

// Add registers an initializer for the given request code and subscribes the
// Hook to the lifecycle bus if this is the first outstanding entry.
func (h *Hook) Add(code request.Code, init request.Initializer) {
	if init == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.pending[code] = &entry{init: init}
	h.count++
	if h.sub == nil {
		h.sub = h.bus.Subscribe("screen.created", h.onScreenCreated)
	}
}

// Cancel removes a pending initializer that will never run, typically
// because the launch it belonged to failed synchronously. Unknown codes are
// ignored.
func (h *Hook) Cancel(code request.Code) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.pending[code]
	if !ok {
		return
	}
	if e.cancelLoaded != nil {
		e.cancelLoaded()
	}
	delete(h.pending, code)
	h.decrement()
}

// Pending returns the number of initializers still waiting for their
// destination controller.
func (h *Hook) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

// Registered reports whether the Hook is currently subscribed to the bus.
// The invariant Registered() == (Pending() > 0) holds at all times.
func (h *Hook) Registered() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sub != nil
}

// onScreenCreated runs for every screen creation in the process while the
// Hook is registered. It is a cheap filter: most screens are not controller
// hosts launched with a pending code and fall through immediately.
func (h *Hook) onScreenCreated(e event.Event) {
	created, ok := e.(event.ScreenCreatedEvent)
	if !ok || !created.HasRequestCode {
		return
	}
	host, ok := created.Screen.(ControllerHost)
	if !ok {
		return
	}

	code := created.RequestCode

	h.mu.Lock()
	ent, ok := h.pending[code]
	if !ok {
		// A managed launch whose ticket carried no initializer, or a
		// stale code. Either way there is nothing to do.
		h.mu.Unlock()
		return
	}
	// A recreation replaced the host instance; the old instance will never
	// fire its loaded notification, so drop that subscription and attach
	// to the new one.
	if ent.cancelLoaded != nil {
		ent.cancelLoaded()
	}
	ent.cancelLoaded = host.OnControllerLoaded(func(controller any) {
		h.controllerLoaded(code, controller)
	})
	h.mu.Unlock()

	h.logger.Debug("hook attached to controller host",
		"screen_id", created.ScreenID,
		"kind", created.Kind,
		"request_code", int64(code))
}

// controllerLoaded fires when a pending host finally creates its controller.
// The initializer runs exactly once, outside the lock so it may start new
// launches; the pending entry is removed afterwards, per the contract that
// the counter does not drop until the initializer has run.
func (h *Hook) controllerLoaded(code request.Code, controller any) {
	h.mu.Lock()
	ent, ok := h.pending[code]
	if !ok || ent.fired {
		h.mu.Unlock()
		return
	}
	ent.fired = true
	init := ent.init
	h.mu.Unlock()

	init(controller)

	h.mu.Lock()
	if ent.cancelLoaded != nil {
		ent.cancelLoaded()
	}
	delete(h.pending, code)
	h.decrement()
	h.mu.Unlock()

	h.logger.Debug("deferred initializer ran", "request_code", int64(code))
}

// decrement lowers the pending counter and detaches from the bus when it
// reaches zero. The caller must hold h.mu.
func (h *Hook) decrement() {
	h.count--
	if h.count < 0 {
		panic("hook: pending-initializer counter underflow")
	}
	if h.count == 0 && h.sub != nil {
		h.sub.Cancel()
		h.sub = nil
	}
}
