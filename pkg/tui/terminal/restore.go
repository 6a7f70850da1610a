// ABOUTME: RestoreOnPanic recovers from panics, releases raw mode, and prints the stack trace.
// ABOUTME: Intended for use as a deferred call in the goroutine that owns the terminal.

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// exit is swapped out by tests.
var exit = os.Exit

// RestoreOnPanic should be deferred at the top of main. On panic it
// releases the controller, prints the panic value and stack trace to
// stderr, and exits with code 1.
func RestoreOnPanic(c *Controller) {
	r := recover()
	if r == nil {
		return
	}
	reportPanic(c, r, os.Stderr)
	exit(1)
}

// reportPanic releases c and writes the panic report to w. The release
// comes first so the report is printed with the original line discipline.
func reportPanic(c *Controller, r any, w io.Writer) {
	_ = c.Release()
	fmt.Fprintf(w, "\npanic: %v\n\n%s\n", r, debug.Stack())
}
