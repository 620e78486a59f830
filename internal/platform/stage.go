package platform

import (
	"sync"

	"github.com/gobwas/glob"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/atomic"

	"github.com/stagedoor-ui/stagedoor/internal/errors"
	"github.com/stagedoor-ui/stagedoor/internal/event"
	"github.com/stagedoor-ui/stagedoor/internal/logging"
	"github.com/stagedoor-ui/stagedoor/internal/request"
	"github.com/stagedoor-ui/stagedoor/internal/retained"
)

// Config holds the dependencies for creating a Stage.
type Config struct {
	// Bus receives lifecycle events. Created if nil.
	Bus *event.Bus

	// Store is the process-wide retained store. Created if nil.
	Store *retained.Store

	// Logger is used for diagnostics. Optional.
	Logger *logging.Logger
}

// Option configures a Stage.
type Option func(*Stage)

// WithDebugPattern enables verbose lifecycle logging for screen kinds
// matching the given glob pattern.
func WithDebugPattern(g glob.Glob) Option {
	return func(s *Stage) { s.debugKinds = g }
}

// stackEntry is one position on the screen stack. The entry outlives the
// screen objects it holds: recreation swaps the screen, not the entry.
type stackEntry struct {
	id     string
	kind   string
	intent Intent
	screen Screen
	env    *screenEnv

	resumed bool

	// code tags entries launched for a result.
	code    request.Code
	hasCode bool
}

// Stage owns the screen stack and drives all lifecycle transitions on a
// single loop goroutine. See the package documentation for the threading
// model.
type Stage struct {
	bus        *event.Bus
	store      *retained.Store
	logger     *logging.Logger
	debugKinds glob.Glob

	kindsMu sync.Mutex
	kinds   map[string]Factory

	ops      chan func()
	quit     chan struct{}
	done     chan struct{}
	running  atomic.Bool
	stopOnce sync.Once

	// Loop-goroutine state. Never touched from outside the loop.
	stack   []*stackEntry
	pending map[request.Code]string // request code -> caller entry ID
	started bool
}

// New creates a Stage. Screens must be registered with RegisterKind before
// they can be launched.
func New(cfg Config, opts ...Option) *Stage {
	if cfg.Bus == nil {
		cfg.Bus = event.NewBus()
	}
	if cfg.Store == nil {
		cfg.Store = retained.NewStore()
	}

	s := &Stage{
		bus:     cfg.Bus,
		store:   cfg.Store,
		logger:  cfg.Logger,
		kinds:   make(map[string]Factory),
		ops:     make(chan func(), 64),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		pending: make(map[request.Code]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bus returns the lifecycle event bus.
func (s *Stage) Bus() *event.Bus {
	return s.bus
}

// Retained returns the process-wide retained store.
func (s *Stage) Retained() *retained.Store {
	return s.store
}

// RegisterKind registers a factory for a screen kind. Kinds cannot be
// replaced once registered.
func (s *Stage) RegisterKind(kind string, factory Factory) error {
	if kind == "" {
		return errors.NewValidationError("kind", "must not be empty")
	}
	if factory == nil {
		return errors.NewValidationError("factory", "must not be nil")
	}

	s.kindsMu.Lock()
	defer s.kindsMu.Unlock()
	if _, ok := s.kinds[kind]; ok {
		return errors.NewValidationError("kind", "already registered: "+kind)
	}
	s.kinds[kind] = factory
	return nil
}

// factoryFor looks up a registered factory.
func (s *Stage) factoryFor(kind string) (Factory, bool) {
	s.kindsMu.Lock()
	defer s.kindsMu.Unlock()
	f, ok := s.kinds[kind]
	return f, ok
}

// Run processes the stage loop until Stop is called or the last screen
// finishes. It returns ErrStageRunning if the stage is already running.
func (s *Stage) Run() error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.ErrStageRunning
	}

	for {
		select {
		case fn := <-s.ops:
			fn()
		case <-s.quit:
			s.teardown()
			close(s.done)
			return nil
		}
	}
}

// Stop shuts the stage down: every screen on the stack is destroyed as
// finishing, and Run returns. Stop must not be called from the loop
// goroutine; screens end the stage by finishing the root screen instead.
func (s *Stage) Stop() {
	s.signalStop()
	<-s.done
}

// Done returns a channel closed once the stage loop has exited.
func (s *Stage) Done() <-chan struct{} {
	return s.done
}

// signalStop requests loop shutdown without waiting.
func (s *Stage) signalStop() {
	s.stopOnce.Do(func() { close(s.quit) })
}

// Do posts fn to the stage loop. It is the only way for external goroutines
// to touch screens. Returns ErrStageStopped once the loop has exited or
// shutdown has been requested.
func (s *Stage) Do(fn func()) error {
	select {
	case <-s.done:
		return errors.ErrStageStopped
	case <-s.quit:
		return errors.ErrStageStopped
	default:
	}
	select {
	case s.ops <- fn:
		return nil
	case <-s.quit:
		return errors.ErrStageStopped
	}
}

// Start launches a root screen. The kind is validated synchronously; the
// launch itself runs on the loop.
func (s *Stage) Start(intent Intent) error {
	if _, ok := s.factoryFor(intent.Kind); !ok {
		return errors.NewStageError("start "+intent.Kind, errors.ErrKindNotRegistered)
	}
	return s.Do(func() {
		s.push(intent, 0, false)
	})
}

// StartSingleTop launches a screen unless the top entry already has the
// intent's kind, in which case the existing screen receives NewIntent.
func (s *Stage) StartSingleTop(intent Intent) error {
	if _, ok := s.factoryFor(intent.Kind); !ok {
		return errors.NewStageError("start single-top "+intent.Kind, errors.ErrKindNotRegistered)
	}
	return s.Do(func() {
		if top := s.top(); top != nil && top.kind == intent.Kind {
			top.intent = intent
			top.screen.NewIntent(intent)
			return
		}
		s.push(intent, 0, false)
	})
}

// Recreate destroys and rebuilds the screen object for the given entry, as
// a configuration change would. The entry's identity and retained state
// survive.
func (s *Stage) Recreate(screenID string) error {
	return s.Do(func() {
		if e := s.find(screenID); e != nil {
			s.recreate(e)
		}
	})
}

// RecreateAll recreates every entry on the stack, bottom first.
func (s *Stage) RecreateAll() error {
	return s.Do(func() {
		for _, e := range append([]*stackEntry(nil), s.stack...) {
			s.recreate(e)
		}
	})
}

// TopScreen returns the screen object at the top of the stack, or nil. It
// must be called from the loop goroutine.
func (s *Stage) TopScreen() Screen {
	if e := s.top(); e != nil {
		return e.screen
	}
	return nil
}

// top returns the top stack entry, or nil.
func (s *Stage) top() *stackEntry {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// find returns the stack entry with the given ID, or nil.
func (s *Stage) find(id string) *stackEntry {
	for _, e := range s.stack {
		if e.id == id {
			return e
		}
	}
	return nil
}

// push creates a new stack entry and brings it to the resumed state.
func (s *Stage) push(intent Intent, code request.Code, hasCode bool) {
	factory, ok := s.factoryFor(intent.Kind)
	if !ok {
		s.logger.Error("launch for unregistered kind dropped", "kind", intent.Kind)
		return
	}

	if top := s.top(); top != nil && top.resumed {
		top.resumed = false
		s.debugLifecycle(top, "pause")
		top.screen.Pause()
	}

	u, _ := uuid.NewV4()
	e := &stackEntry{
		id:      u.String(),
		kind:    intent.Kind,
		intent:  intent,
		code:    code,
		hasCode: hasCode,
	}
	s.stack = append(s.stack, e)
	s.started = true
	s.create(e, factory)
}

// create constructs the screen object for an entry and walks it up to
// resumed if it is the top. The created event is published before the
// Create callback so bus subscribers can attach observers first.
func (s *Stage) create(e *stackEntry, factory Factory) {
	e.screen = factory()
	e.env = &screenEnv{stage: s, entry: e}

	s.bus.Publish(event.NewScreenCreatedEvent(e.id, e.kind, e.screen, e.code, e.hasCode))

	s.debugLifecycle(e, "create")
	e.screen.Create(e.env)

	// The screen may have finished itself from Create.
	if s.find(e.id) == nil {
		return
	}

	s.debugLifecycle(e, "attach")
	e.screen.Attach()

	if s.find(e.id) != nil && s.top() == e {
		e.resumed = true
		s.debugLifecycle(e, "resume")
		e.screen.Resume()
	}
}

// startForResult launches intent above caller, tagged with code. Called
// from screen envs on the loop goroutine.
func (s *Stage) startForResult(caller *stackEntry, intent Intent, code request.Code) error {
	if _, ok := s.factoryFor(intent.Kind); !ok {
		return errors.NewStageError("start for result "+intent.Kind, errors.ErrKindNotRegistered)
	}
	if s.find(caller.id) == nil {
		return errors.ErrScreenNotFound
	}

	s.pending[code] = caller.id
	s.push(intent, code, true)
	return nil
}

// abort finishes the screen launched with the given code, if it is still
// on the stack. Aborting a completed or unknown code is a no-op.
func (s *Stage) abort(code request.Code) {
	for _, e := range s.stack {
		if e.hasCode && e.code == code {
			s.finish(e, request.StatusCancelled, nil)
			return
		}
	}
	s.logger.Debug("abort for unknown request code ignored", "request_code", int64(code))
}

// finish pops an entry, delivers its result to the caller if it was
// launched for one, and resumes the uncovered screen. The result delivery
// always precedes the caller's Resume.
func (s *Stage) finish(e *stackEntry, status request.Status, extras request.Bundle) {
	idx := -1
	for i, cur := range s.stack {
		if cur == e {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	s.stack = append(s.stack[:idx], s.stack[idx+1:]...)

	if e.resumed {
		e.resumed = false
		s.debugLifecycle(e, "pause")
		e.screen.Pause()
	}
	e.env.finishing = true
	s.debugLifecycle(e, "destroy")
	e.screen.Destroy()

	s.bus.Publish(event.NewScreenDestroyedEvent(e.id, e.kind, false))
	s.bus.Publish(event.NewScreenFinishedEvent(e.id, e.kind, status))

	if e.hasCode {
		callerID, ok := s.pending[e.code]
		if ok {
			delete(s.pending, e.code)
			if caller := s.find(callerID); caller != nil {
				s.debugLifecycle(caller, "result")
				// The finished screen keeps its reference to the bundle;
				// the caller gets its own copy.
				caller.screen.ScreenResult(e.code, status, extras.Clone())
			} else {
				s.logger.Debug("result dropped, caller gone",
					"request_code", int64(e.code),
					"status", status.String())
			}
		}
	}

	if top := s.top(); top != nil && !top.resumed {
		top.resumed = true
		s.debugLifecycle(top, "resume")
		top.screen.Resume()
	}

	if len(s.stack) == 0 && s.started {
		s.signalStop()
	}
}

// recreate swaps the entry's screen object for a fresh one, preserving the
// entry identity, intent, and request-code tag. This is the configuration
// change path.
func (s *Stage) recreate(e *stackEntry) {
	if s.find(e.id) == nil {
		return
	}
	factory, ok := s.factoryFor(e.kind)
	if !ok {
		return
	}

	if e.resumed {
		e.resumed = false
		s.debugLifecycle(e, "pause")
		e.screen.Pause()
	}
	s.debugLifecycle(e, "destroy")
	e.screen.Destroy()
	s.bus.Publish(event.NewScreenDestroyedEvent(e.id, e.kind, true))

	s.create(e, factory)
}

// teardown destroys the remaining stack on shutdown, top first.
func (s *Stage) teardown() {
	for i := len(s.stack) - 1; i >= 0; i-- {
		e := s.stack[i]
		if e.resumed {
			e.resumed = false
			e.screen.Pause()
		}
		e.env.finishing = true
		e.screen.Destroy()
		s.bus.Publish(event.NewScreenDestroyedEvent(e.id, e.kind, false))
	}
	s.stack = nil
	s.pending = make(map[request.Code]string)
	s.bus.Publish(event.NewStageStoppedEvent())
}

// debugLifecycle logs a lifecycle transition for kinds matching the debug
// pattern.
func (s *Stage) debugLifecycle(e *stackEntry, transition string) {
	if s.debugKinds == nil || !s.debugKinds.Match(e.kind) {
		return
	}
	s.logger.Debug("lifecycle transition",
		"screen_id", e.id,
		"kind", e.kind,
		"transition", transition)
}

// screenEnv is the Env implementation handed to each screen object.
type screenEnv struct {
	stage     *Stage
	entry     *stackEntry
	finishing bool
}

func (v *screenEnv) ScreenID() string          { return v.entry.id }
func (v *screenEnv) Kind() string              { return v.entry.kind }
func (v *screenEnv) Intent() Intent            { return v.entry.intent }
func (v *screenEnv) Retained() *retained.Store { return v.stage.store }
func (v *screenEnv) Finishing() bool           { return v.finishing }

func (v *screenEnv) Logger() *logging.Logger {
	return v.stage.logger.WithScreen(v.entry.id).WithKind(v.entry.kind)
}

func (v *screenEnv) StartForResult(intent Intent, code request.Code) error {
	return v.stage.startForResult(v.entry, intent, code)
}

func (v *screenEnv) Post(fn func()) error {
	return v.stage.Do(fn)
}

func (v *screenEnv) Abort(code request.Code) {
	v.stage.abort(code)
}

func (v *screenEnv) Finish(status request.Status, extras request.Bundle) {
	v.stage.finish(v.entry, status, extras)
}
