// Package main is the entry point for the x5 editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/x5/internal/app"
	"github.com/dshills/x5/internal/config"
	"github.com/dshills/x5/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage reports a command line the editor cannot run with. The usage
// text has already been printed.
var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cliOptions holds the parsed command line.
type cliOptions struct {
	file        string
	configPath  string
	noWatch     bool
	overrides   config.Overrides
	showVersion bool
}

func run(args []string, stdout, stderr io.Writer) int {
	cli, err := parseFlags(args, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case err != nil:
		return 1
	}

	if cli.showVersion {
		fmt.Fprintf(stdout, "x5 %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := config.Load(cli.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	cfg.ApplyOverrides(cli.overrides)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logOut, err := app.OpenLogOutput(cfg.Log.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logOut.Close()

	logger := app.NewSessionLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Log.Level),
		Output: logOut,
		Prefix: "x5",
	})
	logger.Info("x5 %s starting (config=%q found=%v)", version, cfg.Path, cfg.FileFound)

	application, err := app.New(app.Options{
		File:        cli.file,
		Config:      cfg,
		ConfigPath:  cli.configPath,
		WatchConfig: !cli.noWatch,
		Overrides:   cli.overrides,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	stop := watchSignals(logger, application.Shutdown)
	defer stop()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		logger.Error("%v", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// watchSignals calls shutdown on SIGINT or SIGTERM until the returned stop
// function is called. stop waits for the signal goroutine to exit.
func watchSignals(logger *app.Logger, shutdown func()) (stop func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case sig := <-signals:
			logger.Info("received %v", sig)
			shutdown()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
		<-exited
	}
}

// parseFlags parses args. It returns flag.ErrHelp after printing help and
// errUsage after printing usage for a bad command line.
func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var (
		opts     cliOptions
		wrap     int
		logLevel string
		logFile  string
		showHelp bool
	)

	fs := flag.NewFlagSet("x5", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml, .lua)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.BoolVar(&opts.noWatch, "no-watch", false, "Do not reload the configuration when it changes")
	fs.IntVar(&wrap, "wrap", 0, "Soft wrap column (0: terminal width, <0: off)")
	fs.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFile, "log-file", "", "Write logs to this file")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "x5 - a small terminal text editor\n\n")
		fmt.Fprintf(stderr, "Usage: x5 [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nKeys:\n")
		fmt.Fprintf(stderr, "  Ctrl+S save, Ctrl+Q quit, Ctrl+L redraw\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  x5                    Open with empty buffer\n")
		fmt.Fprintf(stderr, "  x5 notes.txt          Open or create a file\n")
		fmt.Fprintf(stderr, "  x5 --wrap -1 log.txt  Open a file without soft wrap\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, err
		}
		return opts, errUsage
	}

	if showHelp {
		fs.Usage()
		return opts, flag.ErrHelp
	}
	if opts.showVersion {
		return opts, nil
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.file = fs.Arg(0)
	default:
		fmt.Fprintf(stderr, "Error: x5 edits one file at a time\n\n")
		fs.Usage()
		return opts, errUsage
	}

	// Only flags given on the command line override the config.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "wrap":
			opts.overrides.WrapWidth = &wrap
		case "log-level":
			opts.overrides.LogLevel = &logLevel
		case "log-file":
			opts.overrides.LogFile = &logFile
		}
	})

	if opts.configPath == "" {
		if path, err := config.DefaultPath(); err == nil {
			opts.configPath = path
		}
	}

	return opts, nil
}
