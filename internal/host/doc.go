// Package host pairs a disposable screen object with a retained controller.
//
// The platform destroys and rebuilds screen objects at will, so nothing a
// screen holds directly survives a configuration change. A Host solves this
// by keeping exactly one controller in the process-wide retained store,
// located by a tag that is stable for the life of the stack entry. The first
// host object for an entry creates the controller; every later host object
// for the same entry finds it again and reattaches.
//
// # Main Types
//
//   - Host: a platform.Screen that locates its controller on Create, fires
//     the controller-loaded notification exactly once, and forwards
//     lifecycle callbacks to the controller.
//   - Controller: the base type applications embed. It owns the pending
//     start-for-result registry and flushes staged results on each resume.
//   - Config: the dependencies a Host needs, shared by every host of a kind.
//
// Application controllers embed Controller and may implement the optional
// Attacher, Resumer, Pauser, IntentReceiver, and Finisher interfaces to
// observe lifecycle transitions.
package host
