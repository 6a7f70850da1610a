// ABOUTME: Completer proposes replacements for the word before the cursor on TAB
// ABOUTME: Builtins ranks command names for the first word and history words for later ones

package complete

import (
	"strings"

	"github.com/mauromedda/rawsh/pkg/tui/fuzzy"
)

// Completer returns candidates for word, best first. first reports
// whether word is the command position of the line.
type Completer interface {
	Complete(word string, first bool) []string
}

var _ Completer = (*Builtins)(nil)

// Lines is the slice of history the completer draws arguments from.
type Lines interface {
	Entries() []string
}

// Builtins completes command names. It is stateless apart from the
// optional history source for argument words.
type Builtins struct {
	names   []string
	history Lines
}

// NewBuiltins returns a completer over names. When history is non-nil,
// argument words complete from words seen in history.
func NewBuiltins(names []string, history Lines) *Builtins {
	return &Builtins{names: append([]string(nil), names...), history: history}
}

// Complete ranks command names against the first word; an empty first
// word lists every command. Later words complete from history: words
// starting with word, newest first, or else subsequence matches by score.
func (b *Builtins) Complete(word string, first bool) []string {
	if first {
		return fuzzy.Rank(word, b.names)
	}
	if b.history == nil || word == "" {
		return nil
	}
	words := historyWords(b.history)
	if c := prefixed(word, words); len(c) > 0 {
		return c
	}
	var out []string
	for _, m := range fuzzy.Find(word, words) {
		if m.Str != word {
			out = append(out, m.Str)
		}
	}
	return out
}

// historyWords returns the distinct words of all history lines, newest
// line first.
func historyWords(h Lines) []string {
	lines := h.Entries()
	seen := make(map[string]bool)
	var words []string
	for i := len(lines) - 1; i >= 0; i-- {
		for _, w := range strings.Fields(lines[i]) {
			if !seen[w] {
				seen[w] = true
				words = append(words, w)
			}
		}
	}
	return words
}

func prefixed(word string, words []string) []string {
	var out []string
	for _, w := range words {
		if w != word && strings.HasPrefix(w, word) {
			out = append(out, w)
		}
	}
	return out
}
