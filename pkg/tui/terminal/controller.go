// ABOUTME: Controller provides scoped acquisition of raw mode with guaranteed restore.
// ABOUTME: Keeps the original snapshot, verifies the raw apply, and releases idempotently.

package terminal

import (
	"fmt"
	"sync"

	"github.com/mauromedda/rawsh/internal/log"
)

// fdDevice is implemented by devices backed by a file descriptor; those
// are claimed process-wide so two controllers never share a TTY.
type fdDevice interface {
	Fd() uintptr
}

var (
	claimsMu sync.Mutex
	claims   = make(map[uintptr]*Controller)
)

// Controller owns the transition of one Device into and out of raw mode.
// It is not reentrant: a second Acquire before Release fails.
type Controller struct {
	mu       sync.Mutex
	dev      Device
	original State
	acquired bool
}

// NewController returns a Controller for dev.
func NewController(dev Device) *Controller {
	return &Controller{dev: dev}
}

// Acquired reports whether raw mode is currently held.
func (c *Controller) Acquired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.acquired
}

// Acquire snapshots the current settings and switches the device to raw
// mode. If the raw settings cannot be installed in full, the snapshot is
// put back before returning so no raw behaviour stays active.
func (c *Controller) Acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.acquired {
		return ErrAlreadyAcquired
	}
	if err := c.claim(); err != nil {
		return err
	}

	original, err := c.dev.Query()
	if err != nil {
		c.unclaim()
		return &IOError{Op: "query", Err: err}
	}

	raw := original.Raw()
	if err := c.dev.Apply(raw); err != nil {
		c.rollback(original)
		return &IOError{Op: "apply", Err: err}
	}

	// tcsetattr may succeed after applying only part of the request.
	got, err := c.dev.Query()
	if err != nil {
		c.rollback(original)
		return &IOError{Op: "verify", Err: err}
	}
	if !got.IsRaw() {
		c.rollback(original)
		return &IOError{Op: "verify", Err: fmt.Errorf("raw flags not applied, still set: %s", got.Flags&rawCleared)}
	}

	c.original = original
	c.acquired = true
	log.Debug("terminal: raw mode on (was %s)", original.Flags)
	return nil
}

// Release restores the snapshot taken by Acquire. It is a no-op when raw
// mode is not held, so it is safe to defer unconditionally and to call
// more than once.
func (c *Controller) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.acquired {
		return nil
	}
	c.acquired = false
	c.unclaim()

	if err := c.dev.Restore(c.original); err != nil {
		return &IOError{Op: "restore", Err: err}
	}
	log.Debug("terminal: raw mode off")
	return nil
}

// rollback puts original back after a failed Acquire.
// Must be called with c.mu held.
func (c *Controller) rollback(original State) {
	if err := c.dev.Restore(original); err != nil {
		log.Warn("terminal: rollback after failed acquire: %v", err)
	}
	c.unclaim()
}

// claim registers c as owner of its file descriptor, if it has one.
// Must be called with c.mu held.
func (c *Controller) claim() error {
	fd, ok := c.dev.(fdDevice)
	if !ok {
		return nil
	}
	claimsMu.Lock()
	defer claimsMu.Unlock()

	if owner, busy := claims[fd.Fd()]; busy && owner != c {
		return ErrDeviceBusy
	}
	claims[fd.Fd()] = c
	return nil
}

// unclaim drops c's ownership of its file descriptor.
// Must be called with c.mu held.
func (c *Controller) unclaim() {
	fd, ok := c.dev.(fdDevice)
	if !ok {
		return
	}
	claimsMu.Lock()
	defer claimsMu.Unlock()

	if claims[fd.Fd()] == c {
		delete(claims, fd.Fd())
	}
}

// WithRawMode runs fn with c in raw mode. Release runs on every exit
// path, including a panic inside fn. A release failure is reported only
// when fn itself succeeded.
func WithRawMode(c *Controller, fn func() error) (err error) {
	if err := c.Acquire(); err != nil {
		return err
	}
	defer func() {
		if rerr := c.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn()
}
