// ABOUTME: Candidate ranking over sahilm/fuzzy for completion
// ABOUTME: Prefix matches rank first in lexical order, then subsequence matches by score

package fuzzy

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match represents a single fuzzy match result.
type Match struct {
	Str   string
	Index int
	Score int
}

// Find performs fuzzy matching of pattern against the given items.
// Returns matches sorted by score (best first).
func Find(pattern string, items []string) []Match {
	results := fuzzy.Find(pattern, items)
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{Str: r.Str, Index: r.Index, Score: r.Score}
	}
	return matches
}

// Rank orders the items that match pattern. Items starting with
// pattern come first, sorted; the remaining subsequence matches follow
// by descending score. An empty pattern returns every item, sorted.
func Rank(pattern string, items []string) []string {
	var prefixed []string
	rest := make([]string, 0, len(items))
	for _, it := range items {
		if strings.HasPrefix(it, pattern) {
			prefixed = append(prefixed, it)
		} else {
			rest = append(rest, it)
		}
	}
	slices.Sort(prefixed)
	if pattern == "" {
		return prefixed
	}

	for _, m := range Find(pattern, rest) {
		prefixed = append(prefixed, m.Str)
	}
	return prefixed
}
