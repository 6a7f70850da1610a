// ABOUTME: FileDevice implements Device over a TTY file using termios ioctls from x/sys/unix.
// ABOUTME: Translates between unix.Termios and the portable State flag set.

//go:build linux || darwin || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// FileDevice is a Device backed by a terminal file such as os.Stdin.
type FileDevice struct {
	f *os.File
}

// NewFileDevice returns a FileDevice for f.
func NewFileDevice(f *os.File) *FileDevice {
	return &FileDevice{f: f}
}

// Fd returns the underlying file descriptor.
func (d *FileDevice) Fd() uintptr {
	return d.f.Fd()
}

// Query reads the current termios settings.
func (d *FileDevice) Query() (State, error) {
	fd := int(d.f.Fd())
	if !term.IsTerminal(fd) {
		return State{}, fmt.Errorf("fd %d: %w", fd, ErrNotTerminal)
	}
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return State{}, fmt.Errorf("reading termios: %w", err)
	}
	return stateFromTermios(t), nil
}

// Apply installs s after draining output and discarding pending input.
func (d *FileDevice) Apply(s State) error {
	return d.set(s, ioctlSetTermiosFlush)
}

// Restore installs s immediately.
func (d *FileDevice) Restore(s State) error {
	return d.set(s, ioctlSetTermios)
}

func (d *FileDevice) set(s State, req uint) error {
	fd := int(d.f.Fd())
	base, ok := s.sys.(unix.Termios)
	if !ok {
		cur, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
		if err != nil {
			return fmt.Errorf("reading termios: %w", err)
		}
		base = *cur
	}
	t := termiosFromState(base, s)
	if err := unix.IoctlSetTermios(fd, req, &t); err != nil {
		return fmt.Errorf("writing termios: %w", err)
	}
	return nil
}

func stateFromTermios(t *unix.Termios) State {
	var f Flag
	for _, b := range lflagBits {
		if uint64(t.Lflag)&b.mask != 0 {
			f |= b.flag
		}
	}
	for _, b := range iflagBits {
		if uint64(t.Iflag)&b.mask != 0 {
			f |= b.flag
		}
	}
	if uint64(t.Oflag)&unix.OPOST != 0 {
		f |= FlagOutputProcessing
	}
	if uint64(t.Cflag)&unix.CSIZE == unix.CS8 {
		f |= FlagCharSize8
	}
	return State{
		Flags:    f,
		MinBytes: t.Cc[unix.VMIN],
		Timeout:  t.Cc[unix.VTIME],
		sys:      *t,
	}
}

// termiosFromState starts from base and changes only the bits whose
// portable flag differs, so an unmodified queried State round-trips.
func termiosFromState(base unix.Termios, s State) unix.Termios {
	t := base
	orig := stateFromTermios(&base)
	for _, b := range lflagBits {
		if orig.Has(b.flag) != s.Has(b.flag) {
			setMask(&t.Lflag, b.mask, s.Has(b.flag))
		}
	}
	for _, b := range iflagBits {
		if orig.Has(b.flag) != s.Has(b.flag) {
			setMask(&t.Iflag, b.mask, s.Has(b.flag))
		}
	}
	if orig.Has(FlagOutputProcessing) != s.Has(FlagOutputProcessing) {
		setMask(&t.Oflag, unix.OPOST, s.Has(FlagOutputProcessing))
	}
	if s.Has(FlagCharSize8) && !orig.Has(FlagCharSize8) {
		setMask(&t.Cflag, unix.CSIZE, false)
		setMask(&t.Cflag, unix.CS8, true)
	}
	t.Cc[unix.VMIN] = s.MinBytes
	t.Cc[unix.VTIME] = s.Timeout
	return t
}

type termiosBit struct {
	flag Flag
	mask uint64
}

var lflagBits = []termiosBit{
	{FlagEcho, unix.ECHO},
	{FlagCanonical, unix.ICANON},
	{FlagSignals, unix.ISIG},
	{FlagExtended, unix.IEXTEN},
}

var iflagBits = []termiosBit{
	{FlagBreakInterrupt, unix.BRKINT},
	{FlagCRToNL, unix.ICRNL},
	{FlagParityCheck, unix.INPCK},
	{FlagStripHighBit, unix.ISTRIP},
	{FlagFlowControl, unix.IXON},
}

// setMask sets or clears mask in v; tcflag_t is 32 or 64 bits by platform.
func setMask[T ~uint32 | ~uint64](v *T, mask uint64, on bool) {
	if on {
		*v |= T(mask)
	} else {
		*v &^= T(mask)
	}
}
