// ABOUTME: Pins lipgloss background detection so no OSC 10/11 query reaches the terminal
// ABOUTME: Import (with _) from main before anything renders a style

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// Adaptive colors make lipgloss ask the terminal for its background
	// via OSC 11. The reply arrives on stdin, where the line editor would
	// read it byte by byte as typed input. Setting the answer up front
	// skips the query.
	lipgloss.SetHasDarkBackground(true)
}
