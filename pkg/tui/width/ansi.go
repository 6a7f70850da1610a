// ABOUTME: ANSI escape sequence stripping for measuring styled prompts
// ABOUTME: Skips CSI, OSC, string-terminated and two-byte ESC sequences

package width

import "strings"

// StripANSI removes all ANSI escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			i = skipANSISequence(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// skipANSISequence returns the index just past the escape sequence that
// starts at s[i].
func skipANSISequence(s string, i int) int {
	i++ // ESC
	if i >= len(s) {
		return i
	}

	switch s[i] {
	case '[':
		// CSI: parameters up to a final byte 0x40-0x7E
		for i++; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
		return i
	case ']', '_', 'P', '^':
		// OSC ends with BEL or ST; APC/DCS/PM with ST
		osc := s[i] == ']'
		for i++; i < len(s); i++ {
			if osc && s[i] == '\x07' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	case '(', ')':
		// Character set designation
		return min(i+2, len(s))
	}
	return i + 1
}
