// ABOUTME: Defines the Device capability interface and the portable line-discipline State.
// ABOUTME: State.Raw derives the raw configuration so the derivation is testable without a TTY.

package terminal

import "strings"

// Device abstracts the line-discipline operations of a terminal so the
// mode controller can be driven by a real TTY or a fake.
type Device interface {
	// Query reads the current configuration.
	Query() (State, error)
	// Apply flushes pending I/O and then installs s.
	Apply(s State) error
	// Restore installs s without touching queued input.
	Restore(s State) error
}

// Flag is a single line-discipline setting.
type Flag uint32

const (
	FlagEcho             Flag = 1 << iota // echo typed characters
	FlagCanonical                         // line-buffered input
	FlagSignals                           // INTR/QUIT/SUSP generate signals
	FlagExtended                          // implementation-defined input processing
	FlagBreakInterrupt                    // BREAK sends SIGINT
	FlagCRToNL                            // translate CR to NL on input
	FlagParityCheck                       // input parity checking
	FlagStripHighBit                      // strip the 8th bit of input bytes
	FlagFlowControl                       // XON/XOFF on input
	FlagOutputProcessing                  // output post-processing
	FlagCharSize8                         // 8-bit characters
)

// rawCleared lists the flags that raw mode switches off.
const rawCleared = FlagEcho | FlagCanonical | FlagSignals | FlagExtended |
	FlagBreakInterrupt | FlagCRToNL | FlagParityCheck | FlagStripHighBit |
	FlagFlowControl | FlagOutputProcessing

var flagNames = []struct {
	f    Flag
	name string
}{
	{FlagEcho, "echo"},
	{FlagCanonical, "canonical"},
	{FlagSignals, "signals"},
	{FlagExtended, "extended"},
	{FlagBreakInterrupt, "brkint"},
	{FlagCRToNL, "icrnl"},
	{FlagParityCheck, "inpck"},
	{FlagStripHighBit, "istrip"},
	{FlagFlowControl, "ixon"},
	{FlagOutputProcessing, "opost"},
	{FlagCharSize8, "cs8"},
}

// String lists the set flags, e.g. "echo|canonical".
func (f Flag) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.f != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// State is a snapshot of a terminal's line-discipline configuration.
// The platform snapshot it was read from travels with it, so applying a
// queried State unchanged reproduces the original settings exactly.
type State struct {
	Flags    Flag
	MinBytes uint8 // VMIN
	Timeout  uint8 // VTIME, tenths of a second

	sys any
}

// Has reports whether every flag in f is set.
func (s State) Has(f Flag) bool {
	return s.Flags&f == f
}

// Raw returns the raw-mode configuration derived from s: no echo, no
// canonical buffering, no signal generation, no input translation or
// flow control, no output processing, 8-bit characters, and reads that
// block until one byte arrives.
func (s State) Raw() State {
	raw := s
	raw.Flags &^= rawCleared
	raw.Flags |= FlagCharSize8
	raw.MinBytes = 1
	raw.Timeout = 0
	return raw
}

// IsRaw reports whether s matches the raw-mode configuration.
func (s State) IsRaw() bool {
	return s.Flags&rawCleared == 0 && s.Has(FlagCharSize8) && s.MinBytes == 1 && s.Timeout == 0
}
