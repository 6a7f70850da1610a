// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --config, --max-line, --history-size, --theme, --no-color, --verbose, --version

package main

import (
	"flag"
	"io"

	"github.com/mauromedda/rawsh/internal/config"
)

type cliArgs struct {
	configPath  string
	maxLine     int
	historySize int
	theme       string
	noColor     bool
	verbose     bool
	version     bool
}

func parseFlags(args []string, stderr io.Writer) (cliArgs, error) {
	var a cliArgs

	fs := flag.NewFlagSet("rawsh", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&a.configPath, "config", "", "Config file (default ~/.rawsh/config.yaml)")
	fs.IntVar(&a.maxLine, "max-line", 0, "Maximum line length in bytes")
	fs.IntVar(&a.historySize, "history-size", 0, "Number of history entries kept")
	fs.StringVar(&a.theme, "theme", "", "Theme name or YAML theme file")
	fs.BoolVar(&a.noColor, "no-color", false, "Disable styled output")
	fs.BoolVar(&a.verbose, "verbose", false, "Enable debug logging to stderr")
	fs.BoolVar(&a.version, "version", false, "Show version and exit")

	if err := fs.Parse(args); err != nil {
		return cliArgs{}, err
	}
	return a, nil
}

// overrides returns the config values set on the command line.
func (a cliArgs) overrides() config.Overrides {
	return config.Overrides{
		MaxLine:     a.maxLine,
		HistorySize: a.historySize,
		NoColor:     a.noColor,
		Verbose:     a.verbose,
	}
}
