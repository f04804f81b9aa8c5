// Package allocerr provides the standardized error taxonomy for regionpool.
//
// Every pool operation either fully succeeds or returns one of a small,
// closed set of failure kinds. Call sites compare against these sentinels
// with errors.Is; a StatusError wraps one of them with the operation
// context that produced it.
package allocerr

import "fmt"

// Kind identifies one of the allocator's failure categories.
type Kind int

const (
	// Fail is a generic failure: bad handle, unreachable invariant, or
	// internal bookkeeping error.
	Fail Kind = iota
	// NotFound means no free segment satisfied the requested size. This is
	// a routine condition, not a bug.
	NotFound
	// NotFreed means close was refused because the pool still has live
	// allocations or more than one remaining gap.
	NotFreed
	// CalledAgain means a lifecycle operation (init/shutdown/close) ran
	// when it had already run.
	CalledAgain
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Fail:
		return "Fail"
	case NotFound:
		return "NotFound"
	case NotFreed:
		return "NotFreed"
	case CalledAgain:
		return "CalledAgain"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// StatusError pairs a Kind with the operation and context that raised it.
type StatusError struct {
	Kind      Kind
	Operation string
	Message   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Operation, e.Kind)
	}

	return fmt.Sprintf("%s: %s: %s", e.Operation, e.Kind, e.Message)
}

// Is reports whether target is a sentinel of the same Kind, so callers can
// write errors.Is(err, allocerr.ErrNotFound) regardless of which operation
// produced it.
func (e *StatusError) Is(target error) bool {
	sentinel, ok := target.(*StatusError)
	if !ok {
		return false
	}

	return e.Kind == sentinel.Kind
}

// Sentinel values for errors.Is comparisons. These carry no operation
// context; New wraps them with context for the error actually returned.
var (
	ErrFail        = &StatusError{Kind: Fail}
	ErrNotFound    = &StatusError{Kind: NotFound}
	ErrNotFreed    = &StatusError{Kind: NotFreed}
	ErrCalledAgain = &StatusError{Kind: CalledAgain}
)

// New builds a StatusError of the given kind, attributed to operation, with
// an optional formatted message.
func New(kind Kind, operation, format string, args ...interface{}) *StatusError {
	return &StatusError{
		Kind:      kind,
		Operation: operation,
		Message:   fmt.Sprintf(format, args...),
	}
}

// KindOf extracts the Kind carried by err, if any, and reports whether one
// was found.
func KindOf(err error) (Kind, bool) {
	se, ok := err.(*StatusError)
	if !ok {
		return Fail, false
	}

	return se.Kind, true
}
