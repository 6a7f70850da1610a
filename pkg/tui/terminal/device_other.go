// ABOUTME: FileDevice fallback for platforms without termios ioctls (Windows, Plan 9, ...).
// ABOUTME: Delegates to x/term MakeRaw/Restore and reports flags from its own bookkeeping.

//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// cookedFlags approximates a default interactive console.
const cookedFlags = FlagEcho | FlagCanonical | FlagSignals | FlagExtended |
	FlagCRToNL | FlagFlowControl | FlagOutputProcessing | FlagCharSize8

// FileDevice is a Device backed by a console file such as os.Stdin.
type FileDevice struct {
	f   *os.File
	raw bool
}

// NewFileDevice returns a FileDevice for f.
func NewFileDevice(f *os.File) *FileDevice {
	return &FileDevice{f: f}
}

// Fd returns the underlying file descriptor.
func (d *FileDevice) Fd() uintptr {
	return d.f.Fd()
}

// Query snapshots the console state.
func (d *FileDevice) Query() (State, error) {
	fd := int(d.f.Fd())
	if !term.IsTerminal(fd) {
		return State{}, fmt.Errorf("fd %d: %w", fd, ErrNotTerminal)
	}
	st, err := term.GetState(fd)
	if err != nil {
		return State{}, fmt.Errorf("reading console state: %w", err)
	}
	s := State{Flags: cookedFlags, sys: st}
	if d.raw {
		s = s.Raw()
	}
	return s, nil
}

// Apply switches the console to raw mode when s is raw.
func (d *FileDevice) Apply(s State) error {
	if !s.IsRaw() {
		return d.Restore(s)
	}
	if _, err := term.MakeRaw(int(d.f.Fd())); err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	d.raw = true
	return nil
}

// Restore puts back a snapshot returned by Query.
func (d *FileDevice) Restore(s State) error {
	st, ok := s.sys.(*term.State)
	if !ok {
		return fmt.Errorf("restoring console: snapshot missing")
	}
	if err := term.Restore(int(d.f.Fd()), st); err != nil {
		return fmt.Errorf("restoring console: %w", err)
	}
	d.raw = false
	return nil
}
