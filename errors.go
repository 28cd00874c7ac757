// Package timerservice error kinds, as sentinel errors that callers can
// match with errors.Is. Only ErrInitFailed (from New) and
// ErrFatalPrecondition (in the clock's panic) are produced by this package;
// AddTimer* and RemoveTimer report failure as a 0 id or false.
package timerservice

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the error kind for a malformed call: no callback
// provided to AddTimer*, or id == 0 passed to RemoveTimer. Those calls do
// not return it; they report such a call as a 0 id or false.
var ErrInvalidParameter = errors.New("timerservice: invalid parameter")

// ErrAllocation is the error kind for a timer record or registry entry that
// could not be allocated. No function in this package returns it.
var ErrAllocation = errors.New("timerservice: allocation failed")

// ErrNotFound is the error kind for an id not present in the registry
// (never registered or already removed). RemoveTimer does not return it; it
// reports an unknown id as false.
var ErrNotFound = errors.New("timerservice: timer not found")

// ErrInitFailed is returned by New when the Service's lifecycle state
// cannot move from Awake to Running. A clock that cannot be built panics
// with ErrFatalPrecondition instead.
var ErrInitFailed = errors.New("timerservice: initialization failed")

// ErrFatalPrecondition is the error wrapped by the panic raised when the
// platform performance-counter frequency exceeds what the clock's rational
// tick scaling can represent without overflow. See clock.go.
var ErrFatalPrecondition = errors.New("timerservice: fatal precondition violated")

// WrapError wraps cause with a message, preserving errors.Is/.As against
// cause.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
