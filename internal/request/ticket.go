package request

// Initializer configures the retained controller of an asynchronously
// launched host screen the moment that controller becomes available. The
// argument is the destination controller; callers assert it to the concrete
// type they launched.
type Initializer func(controller any)

// Ticket tracks one outstanding start-for-result operation from the moment
// the launch is requested until its result is flushed to the caller.
//
// Lifecycle: created by the registry when a launch begins; Complete is called
// exactly once when the platform reports the raw result; the embedded Await
// is resolved exactly once when the owning registry flushes the ticket on the
// next resume.
type Ticket struct {
	Code        Code
	Initializer Initializer

	status Status
	extras Bundle
	await  *Await
}

// NewTicket creates a pending ticket for the given code.
func NewTicket(code Code, init Initializer) *Ticket {
	return &Ticket{
		Code:        code,
		Initializer: init,
		status:      StatusPending,
		await:       NewAwait(),
	}
}

// Complete records the platform-reported disposition. It must be called at
// most once; the registry guarantees this by removing the ticket from its map
// before completing it.
func (t *Ticket) Complete(status Status, extras Bundle) {
	t.status = status
	t.extras = extras
}

// Result returns the recorded disposition. Status is StatusPending until
// Complete has been called.
func (t *Ticket) Result() Result {
	return Result{Status: t.status, Extras: t.extras}
}

// Await returns the promise the caller is blocked on.
func (t *Ticket) Await() *Await {
	return t.await
}

// Flush resolves the caller's awaitable with the recorded result.
func (t *Ticket) Flush() {
	t.await.Resolve(t.Result())
}
