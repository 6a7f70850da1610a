// ABOUTME: Decoder turns a raw byte stream into Key events one byte at a time.
// ABOUTME: Buffers CSI/SS3 escape sequences and multi-byte UTF-8 runes until complete.

package key

import "unicode/utf8"

// maxSequence bounds a buffered escape sequence; longer input is dropped.
const maxSequence = 16

type decodeState int

const (
	stateGround decodeState = iota
	stateEscape             // saw ESC
	stateCSI                // saw ESC [
	stateSS3                // saw ESC O
	stateUTF8               // inside a multi-byte rune
)

// Decoder is a byte-at-a-time input state machine. The zero value is
// ready to use. It never blocks and keeps no timers: a lone ESC stays
// pending until the next byte tells it what it was.
type Decoder struct {
	state decodeState
	buf   []byte
	need  int
}

// Feed consumes one byte. It returns the decoded key and true when b
// completes an event, or false while a sequence is still incomplete.
func (d *Decoder) Feed(b byte) (Key, bool) {
	switch d.state {
	case stateEscape:
		return d.feedEscape(b)
	case stateCSI:
		return d.feedCSI(b)
	case stateSS3:
		if b < 0x20 {
			return d.abort(b)
		}
		d.buf = append(d.buf, b)
		return d.finishSequence()
	case stateUTF8:
		return d.feedUTF8(b)
	}
	return d.feedGround(b)
}

// Pending reports whether bytes are buffered awaiting completion.
func (d *Decoder) Pending() bool {
	return d.state != stateGround
}

// Reset drops any partially decoded sequence.
func (d *Decoder) Reset() {
	d.state = stateGround
	d.buf = d.buf[:0]
	d.need = 0
}

func (d *Decoder) feedGround(b byte) (Key, bool) {
	switch {
	case b == 0x1b:
		d.state = stateEscape
		d.buf = append(d.buf[:0], b)
		return Key{}, false
	case b < utf8.RuneSelf:
		return parseSingleByte(b), true
	}

	n := utf8LeadLength(b)
	if n == 0 {
		return Key{Type: KeyUnknown}, true
	}
	d.state = stateUTF8
	d.buf = append(d.buf[:0], b)
	d.need = n - 1
	return Key{}, false
}

func (d *Decoder) feedEscape(b byte) (Key, bool) {
	switch {
	case b == '[':
		d.state = stateCSI
		d.buf = append(d.buf, b)
		return Key{}, false
	case b == 'O':
		d.state = stateSS3
		d.buf = append(d.buf, b)
		return Key{}, false
	case b == 0x1b:
		// ESC ESC: the first one was a lone Escape.
		return Key{Type: KeyEscape}, true
	case b >= 0x20 && b <= 0x7e:
		d.Reset()
		return Key{Type: KeyRune, Rune: rune(b), Text: string(b), Alt: true}, true
	}
	return d.abort(b)
}

func (d *Decoder) feedCSI(b byte) (Key, bool) {
	if b < 0x20 {
		return d.abort(b)
	}
	d.buf = append(d.buf, b)
	switch {
	case b >= 0x40 && b <= 0x7e:
		return d.finishSequence()
	case b >= 0x20 && b <= 0x3f && len(d.buf) < maxSequence:
		return Key{}, false
	}
	d.Reset()
	return Key{Type: KeyUnknown}, true
}

// abort drops a partial escape sequence and decodes b afresh, so a
// control byte such as Ctrl+C is never swallowed by an unfinished one.
func (d *Decoder) abort(b byte) (Key, bool) {
	d.Reset()
	return d.feedGround(b)
}

func (d *Decoder) finishSequence() (Key, bool) {
	k, ok := legacySequences[string(d.buf)]
	d.Reset()
	if !ok {
		return Key{Type: KeyUnknown}, true
	}
	return k, true
}

func (d *Decoder) feedUTF8(b byte) (Key, bool) {
	if b&0xc0 != 0x80 {
		// Broken sequence: drop the prefix and start over with b.
		d.Reset()
		return d.feedGround(b)
	}
	d.buf = append(d.buf, b)
	d.need--
	if d.need > 0 {
		return Key{}, false
	}

	text := string(d.buf)
	d.Reset()
	// U+FFFD typed literally decodes as RuneError with size 3.
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError && size <= 1 {
		return Key{Type: KeyUnknown}, true
	}
	return Key{Type: KeyRune, Rune: r, Text: text}, true
}

// utf8LeadLength returns the encoded length announced by lead byte b,
// or 0 when b cannot start a rune.
func utf8LeadLength(b byte) int {
	switch {
	case b >= 0xc2 && b <= 0xdf:
		return 2
	case b >= 0xe0 && b <= 0xef:
		return 3
	case b >= 0xf0 && b <= 0xf4:
		return 4
	}
	return 0
}
