package request

import (
	"errors"
	"math"

	"go.uber.org/atomic"
)

// codeFloor is the first code an Allocator will ever hand out. Codes below
// the floor are reserved for direct launches that bypass the registry, so a
// managed result can never be mistaken for an unmanaged one.
const codeFloor = 1000

// ErrCodeSpaceExhausted is returned when an Allocator has handed out every
// code in the int32 range. Reaching it requires ~2 billion launches in one
// process lifetime; it exists so the failure is an error, not a wraparound.
var ErrCodeSpaceExhausted = errors.New("request code space exhausted")

// Code is an integer tag linking an asynchronous launch request to its
// eventual platform result.
type Code int32

// Managed reports whether the code falls in the allocator-owned range.
func (c Code) Managed() bool {
	return c >= codeFloor
}

// Allocator is a process-wide source of unique request codes. All registries
// that share an Allocator share one code namespace, which is what makes a
// code sufficient to route a result back to its ticket.
//
// Allocator is safe for concurrent use.
type Allocator struct {
	next atomic.Int64
}

// NewAllocator creates an Allocator whose first code is the reserved floor.
func NewAllocator() *Allocator {
	a := &Allocator{}
	a.next.Store(codeFloor)
	return a
}

// Next returns the next unused request code.
// Codes are never reused; once the int32 space is exhausted every subsequent
// call returns ErrCodeSpaceExhausted.
func (a *Allocator) Next() (Code, error) {
	n := a.next.Inc() - 1
	if n > math.MaxInt32 {
		return 0, ErrCodeSpaceExhausted
	}
	return Code(n), nil
}
