// ABOUTME: Tests for cell width and grapheme boundary stepping
// ABOUTME: Covers ASCII, wide CJK, combining marks, emoji sequences and styled prompts

package width

import "testing"

func TestCells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "ascii", input: "hello", want: 5},
		{name: "cjk", input: "世界", want: 4},
		{name: "combining accent", input: "e\u0301", want: 1},
		{name: "emoji zwj", input: "\U0001F469\u200d\U0001F4BB", want: 2},
		{name: "mixed", input: "a世b", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Cells([]byte(tt.input)); got != tt.want {
				t.Errorf("Cells(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleWidth_StyledPrompt(t *testing.T) {
	t.Parallel()

	if got := VisibleWidth("\x1b[1;34m~/src\x1b[0m $ "); got != 8 {
		t.Errorf("VisibleWidth = %d, want 8", got)
	}
}

func TestBoundaries(t *testing.T) {
	t.Parallel()

	b := []byte("ae\u0301世")
	// offsets: a=0, e=1, U+0301=2..3, 世=4..6, len=7

	tests := []struct {
		name string
		fn   func([]byte, int) int
		at   int
		want int
	}{
		{name: "prev at start", fn: PrevBoundary, at: 0, want: 0},
		{name: "prev over wide", fn: PrevBoundary, at: 7, want: 4},
		{name: "prev over combining", fn: PrevBoundary, at: 4, want: 1},
		{name: "prev over ascii", fn: PrevBoundary, at: 1, want: 0},
		{name: "next over ascii", fn: NextBoundary, at: 0, want: 1},
		{name: "next over combining", fn: NextBoundary, at: 1, want: 4},
		{name: "next over wide", fn: NextBoundary, at: 4, want: 7},
		{name: "next at end", fn: NextBoundary, at: 7, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.fn(b, tt.at); got != tt.want {
				t.Errorf("boundary(%d) = %d, want %d", tt.at, got, tt.want)
			}
		})
	}
}
