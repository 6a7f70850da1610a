// ABOUTME: Editor reads one line from a raw-mode terminal, byte by byte, with in-place editing.
// ABOUTME: Echoes edits, re-renders the tail after mid-line inserts, and returns on Enter/Ctrl+C/Ctrl+D.

package lineedit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mauromedda/rawsh/internal/log"
	"github.com/mauromedda/rawsh/pkg/tui/internal/killring"
	"github.com/mauromedda/rawsh/pkg/tui/internal/undo"
	"github.com/mauromedda/rawsh/pkg/tui/key"
	"github.com/mauromedda/rawsh/pkg/tui/width"
)

// DefaultMaxLength bounds a line when WithMaxLength is not given.
const DefaultMaxLength = 1024

const undoDepth = 64

// Terminal control sequences written by the editor.
const (
	seqBackspace   = '\b'
	seqEraseToEOL  = "\x1b[K"
	seqClearScreen = "\x1b[H\x1b[2J"
	seqInterrupt   = "^C"
	seqBell        = "\a"
	seqNewline     = "\r\n"
)

// History is the read side of a line history, oldest entry at index 0.
type History interface {
	Len() int
	At(i int) (string, bool)
}

// Completer proposes replacements for the word before the cursor. first
// is true when the word is the first one on the line.
type Completer interface {
	Complete(word string, first bool) []string
}

// Option configures an Editor.
type Option func(*Editor)

// WithMaxLength bounds every line to n bytes.
func WithMaxLength(n int) Option {
	return func(e *Editor) { e.maxLen = n }
}

// WithHistory enables Up/Down navigation through h.
func WithHistory(h History) Option {
	return func(e *Editor) { e.history = h }
}

// WithCompleter enables Tab completion through c.
func WithCompleter(c Completer) Option {
	return func(e *Editor) { e.completer = c }
}

// action groups consecutive edits for undo and kill merging.
type action int

const (
	actionNone action = iota
	actionInsert
	actionKill
	actionOther
)

type snapshot struct {
	data   []byte
	cursor int
}

// navigation tracks a walk through history. While active, index is the
// entry shown and draft holds the line typed before the walk began.
type navigation struct {
	active bool
	index  int
	draft  []byte
}

// Editor is a single-line editor over a raw-mode byte stream. It is
// not safe for concurrent use; each ReadLine owns it until it returns.
type Editor struct {
	in        io.Reader
	out       *bufio.Writer
	maxLen    int
	history   History
	completer Completer

	prompt string
	buf    *Buffer
	dec    key.Decoder
	ring   *killring.KillRing
	undo   *undo.Stack[snapshot]
	nav    navigation
	last   action
	one    [1]byte
}

// New returns an Editor reading raw bytes from in and rendering to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Editor {
	e := &Editor{
		in:     in,
		out:    bufio.NewWriter(out),
		maxLen: DefaultMaxLength,
		ring:   killring.New(),
		undo:   undo.New[snapshot](undoDepth),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.buf = NewBuffer(e.maxLen)
	return e
}

// ReadLine writes prompt and edits a fresh line until Enter, Ctrl+C,
// Ctrl+D, end of input, or an I/O error. The terminal must already be in
// raw mode. Every loop iteration consumes exactly one input byte.
func (e *Editor) ReadLine(prompt string) Result {
	e.prompt = prompt
	e.buf.Reset()
	e.dec.Reset()
	e.undo.Reset()
	e.nav = navigation{}
	e.last = actionNone

	e.out.WriteString(prompt)
	if err := e.out.Flush(); err != nil {
		return failed(err)
	}

	for {
		b, err := e.readByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if e.dec.Pending() {
					log.Debug("lineedit: input ended inside a partial sequence")
				}
				return Result{Kind: Terminated}
			}
			return failed(fmt.Errorf("reading input: %w", err))
		}

		k, ok := e.dec.Feed(b)
		if !ok {
			continue
		}
		if res, done := e.handle(k); done {
			if err := e.out.Flush(); err != nil && res.Kind != Failed {
				return failed(err)
			}
			log.Debug("lineedit: %s (%d bytes)", res.Kind, len(res.Line))
			return res
		}
		if err := e.out.Flush(); err != nil {
			return failed(err)
		}
	}
}

func failed(err error) Result {
	return Result{Kind: Failed, Err: err}
}

func (e *Editor) readByte() (byte, error) {
	if _, err := io.ReadFull(e.in, e.one[:]); err != nil {
		return 0, err
	}
	return e.one[0], nil
}

// handle applies one key. It reports done when the key ends the call.
func (e *Editor) handle(k key.Key) (Result, bool) {
	switch k.Type {
	case key.KeyCtrlC:
		e.out.WriteString(seqInterrupt)
		return Result{Kind: Cancelled, Discarded: e.buf.Len()}, true
	case key.KeyCtrlD:
		return Result{Kind: Terminated}, true
	case key.KeyEnter:
		return Result{Kind: Completed, Line: e.buf.String()}, true
	}

	prev := e.last
	e.last = actionOther

	switch k.Type {
	case key.KeyRune:
		if !k.Alt {
			e.insert([]byte(k.Text), prev)
		}
	case key.KeyBackspace:
		e.deleteBackward(width.PrevBoundary(e.buf.Bytes(), e.buf.Cursor()))
	case key.KeyDelete:
		e.deleteForward(width.NextBoundary(e.buf.Bytes(), e.buf.Cursor()))
	case key.KeyLeft:
		e.moveLeft()
	case key.KeyRight:
		e.moveRight()
	case key.KeyHome:
		e.moveHome()
	case key.KeyEnd:
		e.moveEnd()
	case key.KeyUp:
		e.historyPrev()
	case key.KeyDown:
		e.historyNext()
	case key.KeyTab:
		e.complete()
	case key.KeyCtrl:
		e.handleCtrl(k.Rune, prev)
	}
	return Result{}, false
}

// handleCtrl maps the Emacs-style Ctrl bindings.
func (e *Editor) handleCtrl(r rune, prev action) {
	switch r {
	case 'a':
		e.moveHome()
	case 'e':
		e.moveEnd()
	case 'b':
		e.moveLeft()
	case 'f':
		e.moveRight()
	case 'p':
		e.historyPrev()
	case 'n':
		e.historyNext()
	case 'k':
		e.kill(e.buf.Cursor(), e.buf.Len(), prev)
	case 'u':
		e.kill(0, e.buf.Cursor(), prev)
	case 'w':
		e.kill(wordStart(e.buf.Head()), e.buf.Cursor(), prev)
	case 'y':
		e.yank()
	case '_':
		e.undoLast()
	case 'l':
		e.clearScreen()
	}
}

// insert echoes p, splices it in at the cursor, re-renders the shifted
// tail and backs the terminal cursor off to the new insertion point.
// Input that does not fit is dropped without output.
func (e *Editor) insert(p []byte, prev action) {
	if len(p) == 0 || len(p) > e.buf.Room() {
		return
	}
	if prev != actionInsert {
		e.saveUndo()
	}
	e.last = actionInsert

	e.out.Write(p)
	e.buf.Insert(p)
	tail := e.buf.Tail()
	e.out.Write(tail)
	e.backoff(width.Cells(tail))
}

func (e *Editor) deleteBackward(from int) {
	if from >= e.buf.Cursor() {
		return
	}
	e.saveUndo()
	removed := e.buf.Delete(from, e.buf.Cursor())
	e.backoff(width.Cells(removed))
	e.redrawTail()
}

func (e *Editor) deleteForward(to int) {
	if to <= e.buf.Cursor() {
		return
	}
	e.saveUndo()
	e.buf.Delete(e.buf.Cursor(), to)
	e.redrawTail()
}

// kill removes [from, to) into the kill ring. Consecutive kills merge
// into one ring entry.
func (e *Editor) kill(from, to int, prev action) {
	if from >= to {
		return
	}
	backward := to == e.buf.Cursor()
	e.saveUndo()
	removed := e.buf.Delete(from, to)
	if prev == actionKill {
		e.ring.Extend(removed, backward)
	} else {
		e.ring.Push(removed)
	}
	e.last = actionKill

	if backward {
		e.backoff(width.Cells(removed))
	}
	e.redrawTail()
}

func (e *Editor) yank() {
	text := fit(e.ring.Yank(), e.buf.Room())
	if len(text) == 0 {
		return
	}
	e.insert(text, actionOther)
	e.last = actionOther
}

func (e *Editor) undoLast() {
	s, ok := e.undo.Pop()
	if !ok {
		e.out.WriteString(seqBell)
		return
	}
	e.refresh(func() {
		e.buf.Replace(s.data)
		e.buf.SetCursor(s.cursor)
	})
}

func (e *Editor) moveLeft() {
	to := width.PrevBoundary(e.buf.Bytes(), e.buf.Cursor())
	e.backoff(width.Cells(e.buf.Bytes()[to:e.buf.Cursor()]))
	e.buf.SetCursor(to)
}

func (e *Editor) moveRight() {
	cur := e.buf.Cursor()
	to := width.NextBoundary(e.buf.Bytes(), cur)
	e.out.Write(e.buf.Bytes()[cur:to])
	e.buf.SetCursor(to)
}

func (e *Editor) moveHome() {
	e.backoff(width.Cells(e.buf.Head()))
	e.buf.SetCursor(0)
}

func (e *Editor) moveEnd() {
	e.out.Write(e.buf.Tail())
	e.buf.SetCursor(e.buf.Len())
}

// historyPrev shows the next older entry, saving the current line as
// the draft when a walk starts.
func (e *Editor) historyPrev() {
	if e.history == nil || e.history.Len() == 0 {
		return
	}
	if !e.nav.active {
		e.nav = navigation{
			active: true,
			index:  e.history.Len(),
			draft:  append([]byte(nil), e.buf.Bytes()...),
		}
	}
	if e.nav.index == 0 {
		e.out.WriteString(seqBell)
		return
	}
	e.nav.index--
	entry, _ := e.history.At(e.nav.index)
	e.replaceLine([]byte(entry))
}

// historyNext shows the next newer entry, or the draft once past the
// newest one.
func (e *Editor) historyNext() {
	if !e.nav.active || e.history == nil {
		return
	}
	e.nav.index++
	if e.nav.index >= e.history.Len() {
		draft := e.nav.draft
		e.nav = navigation{}
		e.replaceLine(draft)
		return
	}
	entry, _ := e.history.At(e.nav.index)
	e.replaceLine([]byte(entry))
}

func (e *Editor) replaceLine(p []byte) {
	e.saveUndo()
	e.refresh(func() { e.buf.Replace(p) })
}

// complete asks the completer about the word before the cursor. A single
// candidate replaces the word; several either extend it to their common
// prefix or are listed below the line.
func (e *Editor) complete() {
	if e.completer == nil {
		return
	}
	head := string(e.buf.Head())
	start := strings.LastIndexByte(head, ' ') + 1
	word := head[start:]
	first := strings.TrimLeft(head[:start], " ") == ""
	cands := e.completer.Complete(word, first)

	switch {
	case len(cands) == 0:
		e.out.WriteString(seqBell)
	case len(cands) == 1:
		e.replaceWord(start, cands[0]+" ")
	default:
		if lcp := commonPrefix(cands); len(lcp) > len(word) && strings.HasPrefix(lcp, word) {
			e.replaceWord(start, lcp)
			return
		}
		e.listCandidates(cands)
	}
}

func (e *Editor) replaceWord(start int, text string) {
	cur := e.buf.Cursor()
	room := e.buf.Room() + (cur - start)
	repl := fit([]byte(text), room)
	e.saveUndo()
	e.refresh(func() {
		e.buf.Delete(start, cur)
		e.buf.Insert(repl)
	})
}

func (e *Editor) listCandidates(cands []string) {
	e.out.WriteString(seqNewline)
	for i, c := range cands {
		if i > 0 {
			e.out.WriteString("  ")
		}
		e.out.WriteString(c)
	}
	e.out.WriteString(seqNewline)
	e.redrawLine()
}

func (e *Editor) clearScreen() {
	e.out.WriteString(seqClearScreen)
	e.redrawLine()
}

// redrawLine writes prompt and buffer on a fresh row and puts the
// terminal cursor at the logical cursor.
func (e *Editor) redrawLine() {
	e.out.WriteString(e.prompt)
	e.out.Write(e.buf.Bytes())
	e.backoff(width.Cells(e.buf.Tail()))
}

// refresh rewrites the line after mutate changes the buffer: back to
// the start of the input, rewrite it, erase leftovers, back off to the
// cursor.
func (e *Editor) refresh(mutate func()) {
	e.backoff(width.Cells(e.buf.Head()))
	mutate()
	e.out.Write(e.buf.Bytes())
	e.out.WriteString(seqEraseToEOL)
	e.backoff(width.Cells(e.buf.Tail()))
}

// redrawTail rewrites from the cursor to the end of the line and erases
// whatever was left behind.
func (e *Editor) redrawTail() {
	tail := e.buf.Tail()
	e.out.Write(tail)
	e.out.WriteString(seqEraseToEOL)
	e.backoff(width.Cells(tail))
}

// backoff moves the terminal cursor n cells left, one backspace per cell.
func (e *Editor) backoff(n int) {
	for range n {
		e.out.WriteByte(seqBackspace)
	}
}

func (e *Editor) saveUndo() {
	e.undo.Push(snapshot{
		data:   append([]byte(nil), e.buf.Bytes()...),
		cursor: e.buf.Cursor(),
	})
}

// wordStart returns the offset where the word ending at len(head)
// begins, skipping trailing spaces first.
func wordStart(head []byte) int {
	i := len(head)
	for i > 0 && head[i-1] == ' ' {
		i--
	}
	for i > 0 && head[i-1] != ' ' {
		i--
	}
	return i
}

func commonPrefix(ss []string) string {
	prefix := ss[0]
	for _, s := range ss[1:] {
		n := 0
		for n < len(prefix) && n < len(s) && prefix[n] == s[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}
