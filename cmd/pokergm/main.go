package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	LogLevel string `help:"Log level (debug|info|warn|error)"`
	LogFile  string `help:"Write logs to this file instead of stderr" type:"path"`
	NoColor  bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play hold'em against bots in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-only tables and report statistics"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate a hand and optionally estimate its equity"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokergm"),
		kong.Description("No-Limit Texas Hold'em in the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// newLogger builds the process logger. Flags win over the fallback level
// and file, which come from the match config for play.
func (g *Globals) newLogger(fallbackLevel, fallbackFile string) (*log.Logger, func(), error) {
	levelName := g.LogLevel
	if levelName == "" {
		levelName = fallbackLevel
	}
	if levelName == "" {
		levelName = "warn"
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}

	file := g.LogFile
	if file == "" {
		file = fallbackFile
	}
	var w io.Writer = os.Stderr
	cleanup := func() {}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		cleanup = func() {
			if err := f.Close(); err != nil {
				log.Error("Failed to close log file", "error", err)
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
	return logger, cleanup, nil
}
