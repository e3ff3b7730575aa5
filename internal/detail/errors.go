package detail

import (
	"github.com/go-faster/errors"
)

var (
	// ErrBusy is returned by Submit while a previous submit is in flight.
	ErrBusy = errors.New("submit in progress")
	// ErrClosed is returned by calls made after Close, and by calls whose
	// result arrived after Close.
	ErrClosed = errors.New("controller closed")
	// ErrMissingID is returned by Mount when the target carries no id.
	ErrMissingID = errors.New("missing id")
	// ErrLoadFailed is matched by errors returned when Mount cannot fetch the record.
	ErrLoadFailed = errors.New("load failed")
	// ErrUpdateFailed is matched by errors returned when the store rejects a submit.
	ErrUpdateFailed = errors.New("update failed")
)

// StateError is returned when an action is not allowed in the current state.
type StateError struct {
	Action string
	State  State
}

func (e *StateError) Error() string {
	return "cannot " + e.Action + " while " + e.State.String()
}

// ErrWrongState is matched by every *StateError.
var ErrWrongState = errors.New("wrong state")

// Is reports whether target is ErrWrongState.
func (e *StateError) Is(target error) bool { return target == ErrWrongState }

// opError carries the cause of a failed store call and matches its sentinel.
type opError struct {
	op   string
	id   string
	kind error
	err  error
}

func (e *opError) Error() string {
	return e.op + " " + e.id + ": " + e.err.Error()
}

func (e *opError) Unwrap() error { return e.err }

func (e *opError) Is(target error) bool { return target == e.kind }
