// ABOUTME: Store is a capacity-bounded, ordered record of completed command lines
// ABOUTME: Oldest entries are evicted first; Match filters entries with doublestar globs

package history

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultCapacity is the number of lines kept when none is configured.
const DefaultCapacity = 30

// Store holds completed lines, oldest at index 0. It satisfies the
// editor's read-only history view.
type Store struct {
	mu      sync.RWMutex
	entries []string
	cap     int
}

// New returns an empty Store holding at most capacity lines. A
// non-positive capacity selects DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{cap: capacity}
}

// Add records line. Blank lines and an immediate repeat of the newest
// entry are skipped. When the store is full the oldest entry is evicted.
func (s *Store) Add(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.entries); n > 0 && s.entries[n-1] == line {
		return false
	}
	if len(s.entries) == s.cap {
		copy(s.entries, s.entries[1:])
		s.entries = s.entries[:len(s.entries)-1]
	}
	s.entries = append(s.entries, line)
	return true
}

// Len returns the number of stored lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Capacity returns the maximum number of stored lines.
func (s *Store) Capacity() int {
	return s.cap
}

// At returns the line at index i, 0 being the oldest.
func (s *Store) At(i int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.entries) {
		return "", false
	}
	return s.entries[i], true
}

// Entries returns a copy of all lines, oldest first.
func (s *Store) Entries() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.entries...)
}

// Entry is a stored line with its 1-based position, as listed by the
// history builtin.
type Entry struct {
	Num  int
	Line string
}

// Match returns the entries whose line matches the doublestar glob
// pattern, oldest first. An empty pattern matches everything.
func (s *Store) Match(pattern string) ([]Entry, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid history pattern %q", pattern)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for i, line := range s.entries {
		if pattern != "" {
			ok, err := doublestar.Match(pattern, line)
			if err != nil {
				return nil, fmt.Errorf("matching history: %w", err)
			}
			if !ok {
				continue
			}
		}
		out = append(out, Entry{Num: i + 1, Line: line})
	}
	return out, nil
}
