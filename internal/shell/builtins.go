// ABOUTME: Builtin commands: help, history, pwd, cd, clear and exit
// ABOUTME: Lines are split on whitespace only; there is no grammar and no external execution

package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// errExit ends the loop from the exit builtin.
var errExit = errors.New("exit")

type command struct {
	name    string
	usage   string
	summary string
	run     func(s *Shell, args []string) error
}

// commands lists the builtins in help order. It is assigned in init
// because cmdHelp reads it, which would otherwise be an initialization cycle.
var commands []*command

func init() {
	commands = []*command{
		{name: "help", usage: "help", summary: "Show commands and editing keys", run: (*Shell).cmdHelp},
		{name: "history", usage: "history [pattern]", summary: "List recent lines, optionally filtered by a glob", run: (*Shell).cmdHistory},
		{name: "pwd", usage: "pwd", summary: "Print the working directory", run: (*Shell).cmdPwd},
		{name: "cd", usage: "cd [dir]", summary: "Change the working directory (home when omitted)", run: (*Shell).cmdCd},
		{name: "clear", usage: "clear", summary: "Clear the screen", run: (*Shell).cmdClear},
		{name: "exit", usage: "exit", summary: "Leave the shell", run: (*Shell).cmdExit},
	}
}

// CommandNames returns the builtin names in help order.
func CommandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}
	return names
}

func lookup(name string) *command {
	for _, c := range commands {
		if c.name == name {
			return c
		}
	}
	return nil
}

// dispatch runs line. It returns errExit when the shell should stop;
// command failures are reported on the output and not returned.
func (s *Shell) dispatch(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	c := lookup(fields[0])
	if c == nil {
		s.printError("rawsh: command not found: %s", fields[0])
		return nil
	}
	s.logf("dispatch %s %q", c.name, fields[1:])
	if err := c.run(s, fields[1:]); err != nil {
		if errors.Is(err, errExit) {
			return err
		}
		s.printError("%s: %v", c.name, err)
	}
	return nil
}

const keysHelp = `
## Editing keys

| Keys | Action |
|------|--------|
| Left, Right, Ctrl-B, Ctrl-F | Move one character |
| Home, End, Ctrl-A, Ctrl-E | Move to start or end of line |
| Backspace, Delete | Delete before or under the cursor |
| Ctrl-K, Ctrl-U, Ctrl-W | Kill to end, to start, previous word |
| Ctrl-Y | Yank the last kill |
| Ctrl-_ | Undo |
| Up, Down, Ctrl-P, Ctrl-N | Walk history |
| Tab | Complete a command name |
| Ctrl-L | Clear the screen |
| Ctrl-C | Discard the line |
| Ctrl-D | Exit |
`

func helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# rawsh\n\n## Commands\n\n| Command | Description |\n|---------|-------------|\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "| `%s` | %s |\n", c.usage, c.summary)
	}
	b.WriteString(keysHelp)
	return b.String()
}

func (s *Shell) cmdHelp(_ []string) error {
	style := styles.DarkStyle
	if !s.color {
		style = styles.NoTTYStyle
	}
	width := 80
	if w, _, err := s.term.Size(); err == nil && w > 0 {
		width = w
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(helpMarkdown())
	if err != nil {
		return fmt.Errorf("rendering help: %w", err)
	}
	_, err = fmt.Fprint(s.out, out)
	return err
}

func (s *Shell) cmdHistory(args []string) error {
	if len(args) > 1 {
		return errors.New("usage: history [pattern]")
	}
	var pattern string
	if len(args) == 1 {
		pattern = args[0]
	}
	entries, err := s.history.Match(pattern)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(s.out, "%5d  %s\n", e.Num, e.Line)
	}
	return nil
}

func (s *Shell) cmdPwd(_ []string) error {
	dir, err := s.getwd()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, dir)
	return err
}

func (s *Shell) cmdCd(args []string) error {
	var dir string
	switch len(args) {
	case 0:
		dir = s.home
	case 1:
		dir = s.expandHome(args[0])
	default:
		return errors.New("too many arguments")
	}
	if dir == "" {
		return errors.New("HOME not set")
	}
	if err := s.chdir(dir); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			return fmt.Errorf("%s: %w", dir, pe.Err)
		}
		return err
	}
	return nil
}

func (s *Shell) cmdClear(_ []string) error {
	_, err := fmt.Fprint(s.out, "\x1b[H\x1b[2J")
	return err
}

func (s *Shell) cmdExit(_ []string) error {
	return errExit
}

// expandHome replaces a leading ~ with the home directory.
func (s *Shell) expandHome(p string) string {
	if s.home == "" {
		return p
	}
	if p == "~" {
		return s.home
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return filepath.Join(s.home, rest)
	}
	return p
}

// abbreviateHome shows dir relative to home as ~/..., like most shells.
func (s *Shell) abbreviateHome(dir string) string {
	if s.home == "" {
		return dir
	}
	if dir == s.home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(dir, s.home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return dir
}
