package nav

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState means the operation needs an active interaction that
	// does not exist, or a fresh one was started over a running one.
	ErrInvalidState = errors.New("nav: invalid state")

	// ErrHistoryExhausted is informational: there is no more history in the
	// requested direction. It never leaves the stack inconsistent.
	ErrHistoryExhausted = errors.New("nav: history exhausted")

	// ErrNilScreen is returned when a nil screen is pushed.
	ErrNilScreen = errors.New("nav: nil screen")
)

// OpError records which stack operation failed.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("nav %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	return &OpError{Op: op, Err: err}
}

// IsExhausted reports whether err only signals the end of the history.
func IsExhausted(err error) bool {
	return errors.Is(err, ErrHistoryExhausted)
}
