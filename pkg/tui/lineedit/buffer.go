// ABOUTME: Buffer is the bounded byte buffer and cursor behind one edited line.
// ABOUTME: Inserts shift the tail right in place; the storage never grows past the bound.

package lineedit

import "unicode/utf8"

// Buffer holds the line under construction. Invariant:
// 0 <= Cursor() <= Len() <= Max().
type Buffer struct {
	data   []byte
	cursor int
}

// NewBuffer returns an empty Buffer that holds at most max bytes.
func NewBuffer(max int) *Buffer {
	if max < 1 {
		max = 1
	}
	return &Buffer{data: make([]byte, 0, max)}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Max returns the capacity bound.
func (b *Buffer) Max() int { return cap(b.data) }

// Room returns how many more bytes fit.
func (b *Buffer) Room() int { return b.Max() - len(b.data) }

// Cursor returns the insertion point.
func (b *Buffer) Cursor() int { return b.cursor }

// Bytes returns the contents. The slice aliases the buffer and is only
// valid until the next mutation.
func (b *Buffer) Bytes() []byte { return b.data }

// Head returns the bytes before the cursor (aliased).
func (b *Buffer) Head() []byte { return b.data[:b.cursor] }

// Tail returns the bytes at and after the cursor (aliased).
func (b *Buffer) Tail() []byte { return b.data[b.cursor:] }

// String returns a copy of the contents.
func (b *Buffer) String() string { return string(b.data) }

// Insert places p at the cursor, shifting the tail right, and advances
// the cursor past it. It reports false and changes nothing when p does
// not fit.
func (b *Buffer) Insert(p []byte) bool {
	if len(p) > b.Room() {
		return false
	}
	n := len(b.data)
	b.data = b.data[:n+len(p)]
	copy(b.data[b.cursor+len(p):], b.data[b.cursor:n])
	copy(b.data[b.cursor:], p)
	b.cursor += len(p)
	return true
}

// Delete removes the bytes in [from, to) and returns a copy of them.
// The cursor keeps its position relative to the surviving text.
func (b *Buffer) Delete(from, to int) []byte {
	from = clamp(from, 0, len(b.data))
	to = clamp(to, from, len(b.data))
	if from == to {
		return nil
	}
	removed := append([]byte(nil), b.data[from:to]...)
	b.data = append(b.data[:from], b.data[to:]...)
	switch {
	case b.cursor >= to:
		b.cursor -= to - from
	case b.cursor > from:
		b.cursor = from
	}
	return removed
}

// SetCursor moves the cursor, clamped to [0, Len()].
func (b *Buffer) SetCursor(i int) {
	b.cursor = clamp(i, 0, len(b.data))
}

// Replace swaps the contents for p, truncated to fit, and puts the
// cursor at the end.
func (b *Buffer) Replace(p []byte) {
	p = fit(p, b.Max())
	b.data = append(b.data[:0], p...)
	b.cursor = len(b.data)
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.cursor = 0
}

// fit truncates p to at most n bytes without splitting a UTF-8 sequence.
func fit(p []byte, n int) []byte {
	if len(p) <= n {
		return p
	}
	if n <= 0 {
		return nil
	}
	for n > 0 && !utf8.RuneStart(p[n]) {
		n--
	}
	return p[:n]
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
