// ABOUTME: Exercises FileDevice and Controller against a real pseudo-terminal.
// ABOUTME: Verifies termios flags after Acquire and exact restoration after Release.

//go:build linux

package terminal

import (
	"errors"
	"os"
	"testing"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

func openPTY(t *testing.T) *os.File {
	t.Helper()

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})
	return tty
}

func TestFileDevice_AcquireReleaseOnPTY(t *testing.T) {
	tty := openPTY(t)
	fd := int(tty.Fd())

	before, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		t.Fatalf("reading termios: %v", err)
	}

	c := NewController(NewFileDevice(tty))
	if err := c.Acquire(); err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}

	raw, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		t.Fatalf("reading termios: %v", err)
	}
	if raw.Lflag&(unix.ECHO|unix.ICANON|unix.ISIG|unix.IEXTEN) != 0 {
		t.Errorf("lflag still has cooked bits: %#x", raw.Lflag)
	}
	if raw.Iflag&(unix.BRKINT|unix.ICRNL|unix.INPCK|unix.ISTRIP|unix.IXON) != 0 {
		t.Errorf("iflag still has cooked bits: %#x", raw.Iflag)
	}
	if raw.Oflag&unix.OPOST != 0 {
		t.Error("OPOST still set")
	}
	if raw.Cflag&unix.CSIZE != unix.CS8 {
		t.Error("character size is not CS8")
	}
	if raw.Cc[unix.VMIN] != 1 || raw.Cc[unix.VTIME] != 0 {
		t.Errorf("VMIN/VTIME = %d/%d, want 1/0", raw.Cc[unix.VMIN], raw.Cc[unix.VTIME])
	}

	if err := c.Release(); err != nil {
		t.Fatalf("Release() error: %v", err)
	}
	after, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		t.Fatalf("reading termios: %v", err)
	}
	if *after != *before {
		t.Errorf("termios not restored:\n before %+v\n after  %+v", *before, *after)
	}
}

func TestFileDevice_NotTerminal(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "notatty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	err = NewController(NewFileDevice(f)).Acquire()
	if !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Acquire() on regular file = %v, want ErrNotTerminal", err)
	}
}
