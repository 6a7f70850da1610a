// ABOUTME: Emacs-style kill ring for the line editor's Ctrl+K/U/W and Ctrl+Y
// ABOUTME: Fixed-size circular buffer of byte runs; consecutive kills can be merged

package killring

const defaultSize = 8

// KillRing is a bounded ring of killed (cut) byte runs. Entries are
// copied on the way in and out so callers may reuse their buffers.
type KillRing struct {
	entries [][]byte
	pos     int
	size    int
}

// New creates a KillRing with the default capacity.
func New() *KillRing {
	return NewSize(defaultSize)
}

// NewSize creates a KillRing holding at most size entries.
func NewSize(size int) *KillRing {
	if size < 1 {
		size = 1
	}
	return &KillRing{
		entries: make([][]byte, 0, size),
		size:    size,
	}
}

// Push adds text to the ring, overwriting the oldest entry when full.
// Empty text is ignored.
func (kr *KillRing) Push(text []byte) {
	if len(text) == 0 {
		return
	}
	entry := append([]byte(nil), text...)
	if len(kr.entries) < kr.size {
		kr.entries = append(kr.entries, entry)
	} else {
		kr.entries[kr.pos] = entry
	}
	kr.pos = (kr.pos + 1) % kr.size
}

// Extend merges text into the most recent entry, before it when
// prepend is set (backward kills) and after it otherwise.
func (kr *KillRing) Extend(text []byte, prepend bool) {
	if len(kr.entries) == 0 {
		kr.Push(text)
		return
	}
	idx := kr.last()
	cur := kr.entries[idx]
	merged := make([]byte, 0, len(cur)+len(text))
	if prepend {
		merged = append(append(merged, text...), cur...)
	} else {
		merged = append(append(merged, cur...), text...)
	}
	kr.entries[idx] = merged
}

// Yank returns a copy of the most recently killed text, or nil.
func (kr *KillRing) Yank() []byte {
	if len(kr.entries) == 0 {
		return nil
	}
	return append([]byte(nil), kr.entries[kr.last()]...)
}

// Len returns the number of entries in the ring.
func (kr *KillRing) Len() int {
	return len(kr.entries)
}

func (kr *KillRing) last() int {
	return (kr.pos - 1 + len(kr.entries)) % len(kr.entries)
}
