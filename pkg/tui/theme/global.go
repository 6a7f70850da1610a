// ABOUTME: Lock-free global theme pointer using atomic.Pointer
// ABOUTME: Current() returns the active theme; Set() swaps it atomically

package theme

import "sync/atomic"

var current atomic.Pointer[Theme]

func init() {
	current.Store(&Theme{Name: "default", Palette: DefaultPalette()})
}

// Current returns the active theme. Never returns nil.
func Current() *Theme {
	return current.Load()
}

// Set atomically replaces the active theme. A nil t is ignored.
func Set(t *Theme) {
	if t != nil {
		current.Store(t)
	}
}
