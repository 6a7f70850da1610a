// ABOUTME: VirtualTerminal is a fake Device plus scripted input and captured output.
// ABOUTME: Records query/apply/restore calls and can inject failures for tests.

package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
)

// cookedState is what a freshly opened interactive TTY typically reports.
var cookedState = State{
	Flags: FlagEcho | FlagCanonical | FlagSignals | FlagExtended | FlagBreakInterrupt |
		FlagCRToNL | FlagFlowControl | FlagOutputProcessing | FlagCharSize8,
	MinBytes: 1,
	Timeout:  0,
}

// VirtualTerminal is a fake terminal for unit tests. Input is served from
// a script; output is captured. It never touches a real TTY.
type VirtualTerminal struct {
	mu     sync.Mutex
	state  State
	in     io.Reader
	out    bytes.Buffer
	width  int
	height int

	queries  int
	applies  int
	restores int

	// Injected failures.
	QueryErr   error
	ApplyErr   error
	RestoreErr error
	// IgnoreFlags are left untouched by Apply, simulating a driver that
	// accepts the request but installs it only in part.
	IgnoreFlags Flag
}

// NewVirtualTerminal returns a VirtualTerminal in cooked mode with the
// given dimensions and no input.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{
		state:  cookedState,
		in:     bytes.NewReader(nil),
		width:  width,
		height: height,
	}
}

// Query returns the current fake state.
func (v *VirtualTerminal) Query() (State, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.queries++
	if v.QueryErr != nil {
		return State{}, v.QueryErr
	}
	return v.state, nil
}

// Apply installs s, honouring ApplyErr and IgnoreFlags.
func (v *VirtualTerminal) Apply(s State) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.applies++
	if v.ApplyErr != nil {
		return v.ApplyErr
	}
	kept := v.state.Flags & v.IgnoreFlags
	s.Flags = s.Flags&^v.IgnoreFlags | kept
	v.state = s
	return nil
}

// Restore installs s, honouring RestoreErr.
func (v *VirtualTerminal) Restore(s State) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.restores++
	if v.RestoreErr != nil {
		return v.RestoreErr
	}
	v.state = s
	return nil
}

// Read serves scripted input; io.EOF once the script is exhausted.
func (v *VirtualTerminal) Read(p []byte) (int, error) {
	v.mu.Lock()
	in := v.in
	v.mu.Unlock()

	return in.Read(p)
}

// Write appends data to the captured output.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	n, err := v.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// Size returns the configured dimensions.
func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.width, v.height, nil
}

// --- Test helpers (not part of Device) ---

// SetInput replaces the input script.
func (v *VirtualTerminal) SetInput(s string) {
	v.SetReader(bytes.NewReader([]byte(s)))
}

// SetReader replaces the input source.
func (v *VirtualTerminal) SetReader(r io.Reader) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.in = r
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.out.String()
}

// Reset clears the captured output.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.out.Reset()
}

// State returns the currently installed fake state.
func (v *VirtualTerminal) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.state
}

// IsRawMode reports whether the installed state is raw.
func (v *VirtualTerminal) IsRawMode() bool {
	return v.State().IsRaw()
}

// Calls returns how many times Query, Apply and Restore ran.
func (v *VirtualTerminal) Calls() (queries, applies, restores int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.queries, v.applies, v.restores
}

// ErrReader is an io.Reader that serves data and then fails with Err.
type ErrReader struct {
	Data []byte
	Err  error
}

func (r *ErrReader) Read(p []byte) (int, error) {
	if len(r.Data) == 0 {
		if r.Err == nil {
			return 0, errors.New("read failed")
		}
		return 0, r.Err
	}
	n := copy(p, r.Data)
	r.Data = r.Data[n:]
	return n, nil
}
