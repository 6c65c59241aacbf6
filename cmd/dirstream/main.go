// Dirstream is a command-line front end to the dirstream library: list a
// directory, print its status, or benchmark enumeration.
//
// Usage:
//
//	dirstream [global flags] list [-a] [-sort] [-json] DIR
//	dirstream [global flags] stat DIR
//	dirstream [global flags] bench [-workers N] [-repeat N] [-json] DIR...
//
// Global flags:
//
//	-config FILE      TOML config (buffer_size, log_level, log_format, [bench])
//	-log-level LEVEL  logrus level (default info)
//	-log-format FMT   text | json
//	-buffer-size N    native record buffer size in bytes
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/calvinalkan/dirstream"
)

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	bufferSize int
}

// app is handed to every command through subcommands' Execute args.
type app struct {
	cfg    config
	log    *logrus.Logger
	stdout io.Writer
}

func (a *app) streamOptions() []dirstream.Option {
	if a.cfg.BufferSize == 0 {
		return nil
	}

	return []dirstream.Option{dirstream.WithBufferSize(a.cfg.BufferSize)}
}

// appFrom extracts the *app passed to Execute.
func appFrom(args []any) *app {
	if len(args) == 0 {
		panic("dirstream: command executed without app")
	}

	a, ok := args[0].(*app)
	if !ok {
		panic(fmt.Sprintf("dirstream: unexpected Execute arg %T", args[0]))
	}

	return a
}

func main() {
	gf := &globalFlags{}

	flag.StringVar(&gf.configPath, "config", "", "path to a TOML config file")
	flag.StringVar(&gf.logLevel, "log-level", "", "log level: panic | fatal | error | warn | info | debug | trace")
	flag.StringVar(&gf.logFormat, "log-format", "", "log format: text | json")
	flag.IntVar(&gf.bufferSize, "buffer-size", 0, "native record buffer size in bytes (0 = library default)")

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&listCmd{}, "")
	subcommands.Register(&statCmd{}, "")
	subcommands.Register(&benchCmd{}, "")

	flag.Parse()

	os.Exit(run(gf))
}

func run(gf *globalFlags) int {
	cfg, err := loadConfig(gf.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		return int(subcommands.ExitUsageError)
	}

	cfg.applyFlags(gf)

	err = cfg.validate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		return int(subcommands.ExitUsageError)
	}

	a := &app{
		cfg:    cfg,
		log:    newLogger(cfg, os.Stderr),
		stdout: os.Stdout,
	}

	a.log.WithFields(logrus.Fields{
		"config":      gf.configPath,
		"buffer_size": cfg.BufferSize,
	}).Debug("starting")

	return int(subcommands.Execute(context.Background(), a))
}
