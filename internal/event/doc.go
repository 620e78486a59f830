// Package event provides a synchronous pub-sub bus for platform lifecycle
// notifications in stagedoor.
//
// The stage publishes an event for every screen-level lifecycle transition it
// drives. Subscribers that need to observe screens they did not create attach
// to the bus instead of to individual screens. The main such subscriber is
// the deferred-initializer hook, which must see every screen creation in the
// process.
//
// # Main Types
//
//   - [Event]: interface all events implement, providing EventType() and Timestamp()
//   - [Bus]: synchronous dispatcher, safe for concurrent use
//   - [Subscription]: cancellable handle returned by Subscribe
//
// # Event Types
//
// Screen lifecycle:
//   - [ScreenCreatedEvent]: a screen object was constructed (fresh launch or
//     recreation after a configuration change)
//   - [ScreenDestroyedEvent]: a screen object was torn down
//   - [ScreenFinishedEvent]: a screen finished and reported a result
//
// Stage lifecycle:
//   - [StageStoppedEvent]: the stage run loop has exited
//
// # Delivery Semantics
//
// Publish calls handlers synchronously on the publishing goroutine, in
// registration order, type-specific subscribers before wildcard subscribers.
// A panicking handler is recovered and logged so it cannot block delivery to
// the remaining handlers. Subscriptions are cancelled via the returned
// handle; cancelling twice is a no-op.
package event
