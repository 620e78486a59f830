// Package hook implements the process-wide deferred-initializer hook.
//
// When a caller starts a controller-hosting screen for a result, it may
// supply an initializer that must run against the destination's retained
// controller, e.g. to observe the controller's events before the user can
// interact with it. The destination controller does not exist yet at launch
// time; it is created by the platform some time later, and the visual screen
// in front of it may be destroyed and recreated any number of times before
// that happens.
//
// The Hook bridges that gap. It is registered on the lifecycle event bus
// only while at least one initializer is outstanding. For every screen
// creation it checks whether the new screen is a controller host launched
// with a pending request code, and if so subscribes to that host's
// controller-loaded notification. When the controller finally appears the
// initializer runs exactly once, the pending entry is dropped, and once no
// entries remain the Hook detaches from the bus again.
//
// The pending counter and the bus registration are kept strictly paired;
// a counter underflow indicates corrupted bookkeeping and panics.
package hook
