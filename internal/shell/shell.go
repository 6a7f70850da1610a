// ABOUTME: Shell is the outer read-prompt loop: banner, raw-mode scope, line editing and dispatch
// ABOUTME: Records completed lines in history and reacts to cancel, end of input and read failures

package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mauromedda/rawsh/internal/complete"
	"github.com/mauromedda/rawsh/internal/config"
	"github.com/mauromedda/rawsh/internal/history"
	"github.com/mauromedda/rawsh/internal/log"
	"github.com/mauromedda/rawsh/pkg/tui/lineedit"
	"github.com/mauromedda/rawsh/pkg/tui/terminal"
	"github.com/mauromedda/rawsh/pkg/tui/theme"
	"github.com/mauromedda/rawsh/pkg/tui/width"
)

// Hint printed when Ctrl+C is pressed on an empty line.
const exitHint = "Use Ctrl-D (i.e. EOF) to exit."

// Terminal is the byte stream the shell talks to. Size reports the
// width used to wrap help output.
type Terminal interface {
	io.Reader
	io.Writer
	Size() (width, height int, err error)
}

// Option configures a Shell.
type Option func(*Shell)

// WithVersion sets the version shown in the banner.
func WithVersion(v string) Option {
	return func(s *Shell) { s.version = v }
}

// WithDirFuncs replaces the working-directory accessors, which default
// to os.Getwd and os.Chdir.
func WithDirFuncs(getwd func() (string, error), chdir func(string) error) Option {
	return func(s *Shell) {
		s.getwd = getwd
		s.chdir = chdir
	}
}

// WithHome sets the directory abbreviated as ~ and used by a bare cd.
func WithHome(home string) Option {
	return func(s *Shell) { s.home = home }
}

// Shell runs the interactive loop over one terminal.
type Shell struct {
	term     Terminal
	ctrl     *terminal.Controller
	out      io.Writer
	editor   *lineedit.Editor
	history  *history.Store
	settings *config.Settings
	styles   theme.Styles
	color    bool
	version  string
	home     string
	getwd    func() (string, error)
	chdir    func(string) error
}

// New builds a Shell that reads from term with ctrl guarding its raw
// mode. settings must already be validated.
func New(term Terminal, ctrl *terminal.Controller, settings *config.Settings, opts ...Option) *Shell {
	home, _ := os.UserHomeDir()
	s := &Shell{
		term:     term,
		ctrl:     ctrl,
		out:      NewCRLFWriter(term),
		history:  history.New(settings.HistorySize),
		settings: settings,
		color:    settings.ColorEnabled(),
		styles:   theme.Plain(),
		version:  "dev",
		home:     home,
		getwd:    os.Getwd,
		chdir:    os.Chdir,
	}
	if s.color {
		s.styles = theme.Current().Styles()
	}
	for _, opt := range opts {
		opt(s)
	}
	s.editor = lineedit.New(term, term,
		lineedit.WithMaxLength(settings.MaxLine),
		lineedit.WithHistory(s.history),
		lineedit.WithCompleter(complete.NewBuiltins(CommandNames(), s.history)),
	)
	return s
}

// History returns the shell's history store.
func (s *Shell) History() *history.Store {
	return s.history
}

// Run prints the banner and loops until end of input, exit or a fatal
// error. The terminal is in raw mode for the duration of the loop and
// is restored on every return path.
func (s *Shell) Run() error {
	s.printBanner()

	return terminal.WithRawMode(s.ctrl, func() error {
		log.SetRawMode(true)
		defer log.SetRawMode(false)

		return s.loop()
	})
}

func (s *Shell) loop() error {
	for {
		res := s.editor.ReadLine(s.prompt())
		switch res.Kind {
		case lineedit.Completed:
			fmt.Fprint(s.out, "\n")
			s.history.Add(res.Line)
			if err := s.dispatch(res.Line); err != nil {
				s.logf("exit builtin")
				return nil
			}
		case lineedit.Cancelled:
			fmt.Fprint(s.out, "\n")
			if res.Discarded == 0 {
				fmt.Fprintln(s.out, s.styles.Hint.Render(exitHint))
			}
		case lineedit.Terminated:
			fmt.Fprint(s.out, "\n")
			s.logf("end of input")
			return nil
		case lineedit.Failed:
			fmt.Fprint(s.out, "\n")
			return fmt.Errorf("reading line: %w", res.Err)
		}
	}
}

// prompt renders "<cwd> <symbol> ", or just "<symbol> " when the working
// directory is hidden or unknown. A cwd taking more than half the
// terminal width is cut down to its last element.
func (s *Shell) prompt() string {
	sym := s.styles.Prompt.Render(s.symbol()) + " "
	if !s.settings.ShowCwdEnabled() {
		return sym
	}
	dir, err := s.getwd()
	if err != nil {
		return sym
	}

	p := s.styles.Cwd.Render(s.abbreviateHome(dir)) + " " + sym
	if w, _, err := s.term.Size(); err == nil && w > 0 && width.VisibleWidth(p) > w/2 {
		p = s.styles.Cwd.Render(filepath.Base(dir)) + " " + sym
	}
	return p
}

func (s *Shell) symbol() string {
	if s.settings.Prompt == "" {
		return config.DefaultPrompt
	}
	return s.settings.Prompt
}

func (s *Shell) printBanner() {
	fmt.Fprintln(s.term, s.styles.Banner.Render("rawsh "+s.version))
	fmt.Fprintln(s.term, s.styles.Hint.Render("Type 'help' for commands. "+exitHint))
}

func (s *Shell) printError(format string, args ...any) {
	fmt.Fprintln(s.out, s.styles.Error.Render(fmt.Sprintf(format, args...)))
}

func (s *Shell) logf(format string, args ...any) {
	log.Debug("shell: "+format, args...)
}
