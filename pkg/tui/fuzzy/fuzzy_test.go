// ABOUTME: Tests for the fuzzy ranking wrapper
// ABOUTME: Verifies prefix-first ordering and subsequence fallbacks

package fuzzy

import (
	"slices"
	"testing"
)

func TestFind_BasicMatch(t *testing.T) {
	t.Parallel()

	matches := Find("app", []string{"apple", "banana", "application"})
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches for 'app', got %d", len(matches))
	}
	for _, m := range matches {
		if m.Str != "apple" && m.Str != "application" {
			t.Errorf("unexpected match %q", m.Str)
		}
	}
}

func TestFind_NoMatch(t *testing.T) {
	t.Parallel()

	if matches := Find("zzz", []string{"cat", "dog", "fish"}); len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestRank(t *testing.T) {
	t.Parallel()

	items := []string{"history", "help", "exit", "pwd", "hash"}

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{name: "prefix sorted", pattern: "h", want: []string{"hash", "help", "history"}},
		{name: "unique prefix", pattern: "hi", want: []string{"history"}},
		{name: "empty", pattern: "", want: []string{"exit", "hash", "help", "history", "pwd"}},
		{name: "subsequence only", pattern: "pd", want: []string{"pwd"}},
		{name: "no match", pattern: "zz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Rank(tt.pattern, items); !slices.Equal(got, tt.want) {
				t.Errorf("Rank(%q) = %v; want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestRank_PrefixBeforeSubsequence(t *testing.T) {
	t.Parallel()

	got := Rank("ex", []string{"index", "exit"})
	if len(got) != 2 || got[0] != "exit" || got[1] != "index" {
		t.Errorf("Rank() = %v; want [exit index]", got)
	}
}
