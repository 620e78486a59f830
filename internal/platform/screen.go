package platform

import (
	"github.com/stagedoor-ui/stagedoor/internal/logging"
	"github.com/stagedoor-ui/stagedoor/internal/request"
	"github.com/stagedoor-ui/stagedoor/internal/retained"
)

// Intent describes a screen to launch: the registered kind and an opaque
// payload for the destination.
type Intent struct {
	Kind   string
	Extras request.Bundle
}

// Factory constructs a screen object for a registered kind. It is called
// once per creation, including every recreation after a configuration
// change.
type Factory func() Screen

// Screen is a visual unit managed by the stage. Implementations receive
// lifecycle callbacks on the stage's loop goroutine and must not retain
// state they expect to survive recreation; that belongs in the retained
// store.
type Screen interface {
	// Create is called once per screen object, before any other callback.
	// The env stays valid until Destroy.
	Create(env Env)

	// Attach is called when the screen's window is attached, after Create.
	Attach()

	// Resume is called when the screen becomes the interactable top of the
	// stack. Pending results are flushed from here.
	Resume()

	// Pause is called when the screen stops being interactable, before a
	// screen is launched above it and before Destroy.
	Pause()

	// NewIntent is called when a launch targets an entry already on the
	// stack instead of creating a new one.
	NewIntent(intent Intent)

	// ScreenResult delivers the raw result of a screen this one launched.
	// It always precedes the Resume that follows the launched screen's
	// teardown.
	ScreenResult(code request.Code, status request.Status, extras request.Bundle)

	// Destroy is the final callback. Env.Finishing distinguishes real
	// teardown from recreation.
	Destroy()
}

// Env is a screen's handle to the stage. All methods except Post must be
// called from the stage's loop goroutine, which is where every lifecycle
// callback runs; Post is how other goroutines get there.
type Env interface {
	// ScreenID is the stable identity of the stack entry. It survives
	// recreation; only finishing ends it.
	ScreenID() string

	// Kind returns the registered kind this screen was created as.
	Kind() string

	// Intent returns the intent the screen was launched with.
	Intent() Intent

	// Retained returns the process-wide retained store.
	Retained() *retained.Store

	// Logger returns a logger carrying the screen's identity.
	Logger() *logging.Logger

	// StartForResult launches a screen above this one, tagged with the
	// given request code. The eventual result arrives via ScreenResult.
	// Errors (unknown kind, stopped stage) are returned synchronously.
	StartForResult(intent Intent, code request.Code) error

	// Abort asks the stage to finish the screen launched with the given
	// code, with a cancelled status. Unknown codes are ignored.
	Abort(code request.Code)

	// Finish pops this screen with the given result. If it was launched
	// for a result, the caller's ScreenResult fires before its Resume.
	Finish(status request.Status, extras request.Bundle)

	// Finishing reports whether the current Destroy is a real teardown
	// rather than a recreation.
	Finishing() bool

	// Post schedules fn on the stage's loop goroutine. It is safe from any
	// goroutine and returns ErrStageStopped once the stage has shut down.
	Post(fn func()) error
}
