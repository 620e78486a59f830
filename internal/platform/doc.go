// Package platform provides the stage driver: the in-process service that
// owns the screen stack and drives every screen-level lifecycle transition.
//
// In the coordination engine's terms the stage IS the platform. It is the
// thing that launches screens, destroys and recreates them on configuration
// changes, and reports results back for flushing. The engine packages
// (registry, hook, host) never depend on the concrete driver; they see it
// through the [Env] handed to each screen and through the lifecycle bus.
//
// # Threading Model
//
// A stage runs a single loop goroutine. Every lifecycle callback, launch,
// result delivery, and recreation executes on that goroutine, in a strict
// order: launching pauses the caller before the destination is created, and
// a finishing screen's result is delivered to the caller before the caller
// is resumed. External goroutines interact with a running stage through
// [Stage.Do], which posts work onto the loop.
//
// # Lifecycle Forwarding
//
// For each screen the stage forwards, in order: Create (with the screen's
// Env), Attach (window attached), Resume; then Pause, ScreenResult, Resume
// cycles as screens above it come and go; NewIntent when an existing entry
// is re-targeted; and finally Destroy. On recreation the same entry gets a
// fresh screen object and the Create/Attach/Resume sequence again, while
// Env.ScreenID and the retained store keep its identity.
package platform
