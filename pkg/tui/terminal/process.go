// ABOUTME: ProcessTerminal bundles the process's stdin/stdout with a raw-mode Controller.
// ABOUTME: Reads come from stdin, writes go to stdout, size and TTY checks use x/term.

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ProcessTerminal is the real terminal attached to the process.
type ProcessTerminal struct {
	in   *os.File
	out  *os.File
	ctrl *Controller
}

// NewProcessTerminal returns a ProcessTerminal over os.Stdin and os.Stdout.
func NewProcessTerminal() *ProcessTerminal {
	return &ProcessTerminal{
		in:   os.Stdin,
		out:  os.Stdout,
		ctrl: NewController(NewFileDevice(os.Stdin)),
	}
}

// Controller returns the raw-mode controller for stdin.
func (t *ProcessTerminal) Controller() *Controller {
	return t.ctrl
}

// IsTerminal reports whether both stdin and stdout are TTYs.
func (t *ProcessTerminal) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd())) && term.IsTerminal(int(t.out.Fd()))
}

// Read reads from stdin.
func (t *ProcessTerminal) Read(p []byte) (int, error) {
	return t.in.Read(p)
}

// Write sends bytes to stdout.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to stdout: %w", err)
	}
	return n, nil
}

// Size returns the current terminal dimensions.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}
