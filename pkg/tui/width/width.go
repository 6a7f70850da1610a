// ABOUTME: Display width and grapheme-cluster stepping for the line editor
// ABOUTME: Uses uniseg for segmentation and go-runewidth for per-cluster cell width

package width

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cells returns how many terminal cells b occupies when printed.
// Control bytes and incomplete UTF-8 occupy none.
func Cells(b []byte) int {
	if isPlainASCII(b) {
		return len(b)
	}
	w := 0
	state := -1
	for len(b) > 0 {
		var cluster []byte
		cluster, b, _, state = uniseg.FirstGraphemeCluster(b, state)
		w += clusterWidth(cluster)
	}
	return w
}

// VisibleWidth returns the display width of s ignoring ANSI escape
// sequences, e.g. a styled prompt.
func VisibleWidth(s string) int {
	return Cells([]byte(StripANSI(s)))
}

// PrevBoundary returns the start of the grapheme cluster that ends at
// offset i of b. It returns 0 when i is 0.
func PrevBoundary(b []byte, i int) int {
	if i <= 0 {
		return 0
	}
	prev := 0
	state := -1
	rest := b[:i]
	pos := 0
	for len(rest) > 0 {
		var cluster []byte
		cluster, rest, _, state = uniseg.FirstGraphemeCluster(rest, state)
		prev = pos
		pos += len(cluster)
	}
	return prev
}

// NextBoundary returns the end of the grapheme cluster that starts at
// offset i of b. It returns len(b) when i is at the end.
func NextBoundary(b []byte, i int) int {
	if i >= len(b) {
		return len(b)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(b[i:], -1)
	return i + len(cluster)
}

// isPlainASCII returns true if b contains only printable ASCII.
func isPlainASCII(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

// clusterWidth returns the display width of one grapheme cluster, taken
// from its first rune.
func clusterWidth(cluster []byte) int {
	r, size := utf8.DecodeRune(cluster)
	if r == utf8.RuneError && size <= 1 {
		return 0
	}
	return runewidth.RuneWidth(r)
}
