// ABOUTME: Defines the Key event type produced from raw terminal bytes.
// ABOUTME: Classifies single bytes and names keys; Decoder assembles them from the byte stream.

package key

import (
	"fmt"
	"strings"
)

// Key represents a decoded keyboard input event.
type Key struct {
	Type KeyType
	Rune rune   // KeyRune: the character; KeyCtrl: the lowercase letter or symbol
	Text string // KeyRune: the exact UTF-8 bytes read
	Alt  bool
	Ctrl bool
}

// KeyType enumerates the kinds of key events the line editor can receive.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character
	KeyEnter                    // Carriage return
	KeyTab                      // Tab
	KeyBackspace                // Backspace / DEL (0x7F) / Ctrl+H
	KeyDelete                   // Delete key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyPageUp                   // Page Up
	KeyPageDown                 // Page Down
	KeyEscape                   // Escape
	KeyCtrlC                    // Ctrl+C, interrupt
	KeyCtrlD                    // Ctrl+D, end of input
	KeyCtrl                     // Any other Ctrl+key; Rune holds the key
	KeyUnknown                  // Unrecognized input
)

// parseSingleByte classifies an ASCII or control byte.
func parseSingleByte(b byte) Key {
	switch {
	case b == 0x0d:
		return Key{Type: KeyEnter}
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x7f || b == 0x08:
		return Key{Type: KeyBackspace}
	case b == 0x03:
		return Key{Type: KeyCtrlC, Ctrl: true}
	case b == 0x04:
		return Key{Type: KeyCtrlD, Ctrl: true}
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Rune: rune(b), Text: string(b)}
	case b == 0x00:
		return Key{Type: KeyCtrl, Rune: '@', Ctrl: true}
	case b >= 0x01 && b <= 0x1a:
		return Key{Type: KeyCtrl, Rune: rune('a' + b - 1), Ctrl: true}
	case b >= 0x1c && b <= 0x1f:
		return Key{Type: KeyCtrl, Rune: rune('\\' + b - 0x1c), Ctrl: true}
	}
	return Key{Type: KeyUnknown}
}

// keyTypeNames provides human-readable labels for each KeyType.
var keyTypeNames = map[KeyType]string{
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEscape:    "Escape",
	KeyCtrlC:     "Ctrl+C",
	KeyCtrlD:     "Ctrl+D",
	KeyUnknown:   "Unknown",
}

// String returns a human-readable representation of the Key for debug display.
func (k Key) String() string {
	switch k.Type {
	case KeyRune:
		return formatRuneKey(k)
	case KeyCtrl:
		return "Ctrl+" + strings.ToUpper(string(k.Rune))
	}
	if name, ok := keyTypeNames[k.Type]; ok {
		return name
	}
	return "Unknown"
}

// formatRuneKey builds a display string for printable rune keys with modifiers.
func formatRuneKey(k Key) string {
	s := string(k.Rune)
	if k.Alt {
		s = fmt.Sprintf("Alt+%s", s)
	}
	return s
}
