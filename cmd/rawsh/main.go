// ABOUTME: CLI entry point for rawsh with terminal crash recovery
// ABOUTME: Parses flags, loads config, resolves the theme and runs the shell on the process terminal

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	// termfix must be imported before anything renders a lipgloss style.
	// It pins the background answer so no OSC 11 query is written to a
	// terminal whose replies the line editor would read as keystrokes.
	_ "github.com/mauromedda/rawsh/internal/termfix"

	"github.com/mauromedda/rawsh/internal/config"
	"github.com/mauromedda/rawsh/internal/log"
	"github.com/mauromedda/rawsh/internal/shell"
	"github.com/mauromedda/rawsh/pkg/tui/terminal"
	"github.com/mauromedda/rawsh/pkg/tui/theme"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("rawsh %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	pt := terminal.NewProcessTerminal()
	defer terminal.RestoreOnPanic(pt.Controller())

	if err := run(args, pt, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the configuration and drives the shell until it ends.
func run(args cliArgs, pt *terminal.ProcessTerminal, stderr io.Writer) error {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}

	settings, err := loadSettings(args, cwd)
	if err != nil {
		return err
	}

	log.SetOutput(stderr)
	if settings.Verbose {
		log.SetLevel(log.LevelDebug)
	}

	if !pt.IsTerminal() {
		return fmt.Errorf("stdin and stdout must be a terminal: %w", terminal.ErrNotTerminal)
	}

	if settings.ColorEnabled() {
		th, err := theme.Resolve(settings.Theme, settings.Palette)
		if err != nil {
			return fmt.Errorf("resolving theme: %w", err)
		}
		theme.Set(th)
	}

	sh := shell.New(pt, pt.Controller(), settings, shell.WithVersion(version))
	log.Debug("starting rawsh %s: max_line=%d history_size=%d theme=%q",
		version, settings.MaxLine, sh.History().Capacity(), theme.Current().Name)
	return sh.Run()
}

// loadSettings merges defaults, config files and command-line flags.
func loadSettings(args cliArgs, projectRoot string) (*config.Settings, error) {
	settings, err := config.Load(args.configPath, projectRoot)
	if err != nil {
		return nil, err
	}
	args.overrides().Apply(settings)
	if args.theme != "" {
		settings.Theme = args.theme
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}
