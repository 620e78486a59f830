// Package registry implements the pending-operation registry at the heart of
// stagedoor's start-for-result engine.
//
// Each retained controller owns one Registry. A registry multiplexes any
// number of in-flight "start a screen and await its result" operations over
// the process-wide request-code namespace: Begin allocates a code, records a
// ticket, and hands the caller an awaitable; Deliver accepts the raw platform
// result for a code and stages the ticket on the flush queue; Flush, run when
// the owning host resumes, resolves staged tickets in arrival order.
//
// # Two-Phase Delivery
//
// Results are deliberately not handed to callers from inside the raw platform
// callback. At that point the host's visual hierarchy may not be attached
// yet, so a caller unblocked there could observe a half-built screen. Deliver
// therefore only records the result and queues the ticket; the caller's
// awaitable resolves on the next resume flush, when the screen is guaranteed
// to be interactable.
//
// # Error Semantics
//
// A result for a code with no outstanding ticket is a stale or duplicate
// platform callback, logged at debug and otherwise ignored. Errors from the
// launch function itself propagate synchronously from Begin, never through
// the awaitable, and roll back the ticket they were allocated.
package registry
