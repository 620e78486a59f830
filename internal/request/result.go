package request

// Status is the final disposition of a launched screen.
type Status int

const (
	// StatusPending indicates the platform has not yet reported a result.
	StatusPending Status = iota

	// StatusOK indicates the screen completed normally.
	StatusOK

	// StatusCancelled indicates the screen was dismissed or aborted.
	StatusCancelled

	// StatusOther indicates a screen-defined disposition; the meaning is
	// private to the two screens involved and travels in the result bundle.
	StatusOther
)

// String returns a human-readable string for the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusOK:
		return "ok"
	case StatusCancelled:
		return "cancelled"
	case StatusOther:
		return "other"
	default:
		return "unknown"
	}
}

// Result is what an awaiting caller ultimately receives: the disposition of
// the launched screen and whatever payload it handed back.
type Result struct {
	Status Status
	Extras Bundle
}
