// ABOUTME: Error values returned by the mode controller and platform devices.
// ABOUTME: IOError carries the failed operation; sentinels cover contract misuse.

package terminal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotTerminal is wrapped when the file descriptor is not a TTY.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrAlreadyAcquired is returned by Acquire on an active controller.
	ErrAlreadyAcquired = errors.New("raw mode already acquired")
	// ErrDeviceBusy is returned when another controller owns the device.
	ErrDeviceBusy = errors.New("terminal device owned by another controller")
)

// IOError reports a failed query, apply, or restore of terminal settings.
type IOError struct {
	Op  string // "query", "apply", "verify" or "restore"
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
