// Package request provides the building blocks for asynchronous
// start-for-result operations: request codes, result payloads, and the
// single-resolution awaitable that callers block on.
//
// # Main Types
//
//   - [Code]: integer tag correlating a launch with its eventual result
//   - [Allocator]: process-wide monotonic source of request codes
//   - [Status]: final disposition of a launched screen (ok, cancelled, other)
//   - [Bundle]: opaque key-value payload attached to intents and results
//   - [Result]: status plus payload delivered to the awaiting caller
//   - [Await]: promise resolved exactly once when the result is flushed
//   - [Ticket]: registry-internal record for one outstanding operation
//
// Codes issued by an Allocator start above a reserved low range so they can
// never collide with request codes used by unmanaged, direct launches.
//
// An Await is resolved by the owning registry only after the platform result
// has arrived and a resume flush has run; see the registry package for the
// two-phase delivery contract.
package request
