package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/dshills/x5/internal/app"
)

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stderr bytes.Buffer
	opts, err := parseFlags(nil, &stderr)
	if err != nil {
		t.Fatalf("parseFlags() failed: %v", err)
	}
	if opts.file != "" {
		t.Errorf("expected no file, got %q", opts.file)
	}
	if filepath.Base(opts.configPath) != "config.toml" {
		t.Errorf("expected default config path, got %q", opts.configPath)
	}
	if opts.overrides.WrapWidth != nil || opts.overrides.LogLevel != nil || opts.overrides.LogFile != nil {
		t.Error("expected no overrides without flags")
	}
	if opts.noWatch {
		t.Error("expected live reload on by default")
	}
}

func TestParseFlags_Options(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseFlags([]string{
		"-c", "/etc/x5.yaml",
		"--wrap", "-1",
		"--log-level", "debug",
		"--log-file", "/tmp/x5.log",
		"--no-watch",
		"notes.txt",
	}, &stderr)
	if err != nil {
		t.Fatalf("parseFlags() failed: %v", err)
	}

	if opts.file != "notes.txt" {
		t.Errorf("expected file notes.txt, got %q", opts.file)
	}
	if opts.configPath != "/etc/x5.yaml" {
		t.Errorf("expected config path, got %q", opts.configPath)
	}
	if opts.overrides.WrapWidth == nil || *opts.overrides.WrapWidth != -1 {
		t.Errorf("expected wrap override -1, got %v", opts.overrides.WrapWidth)
	}
	if opts.overrides.LogLevel == nil || *opts.overrides.LogLevel != "debug" {
		t.Errorf("expected log level override, got %v", opts.overrides.LogLevel)
	}
	if opts.overrides.LogFile == nil || *opts.overrides.LogFile != "/tmp/x5.log" {
		t.Errorf("expected log file override, got %v", opts.overrides.LogFile)
	}
	if !opts.noWatch {
		t.Error("expected --no-watch to disable live reload")
	}
}

func TestParseFlags_TooManyFiles(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags([]string{"a.txt", "b.txt"}, &stderr)

	if !errors.Is(err, errUsage) {
		t.Fatalf("expected errUsage, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Usage: x5") {
		t.Errorf("expected usage text, got %q", stderr.String())
	}
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	var stderr bytes.Buffer
	if _, err := parseFlags([]string{"--bogus"}, &stderr); !errors.Is(err, errUsage) {
		t.Errorf("expected errUsage, got %v", err)
	}
}

func TestParseFlags_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &stderr)

	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Ctrl+S save") {
		t.Errorf("expected key help, got %q", stderr.String())
	}
}

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	badConfig := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(badConfig, []byte("[editor\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{"version", []string{"--version"}, 0, "x5 dev", ""},
		{"help", []string{"--help"}, 0, "", "Usage: x5"},
		{"two files", []string{"a", "b"}, 1, "", "one file at a time"},
		{"bad config", []string{"-c", badConfig}, 1, "", "failed to load config"},
		{"bad format", []string{"-c", filepath.Join(dir, "x.ini")}, 1, "", "unsupported config format"},
		{"bad log level", []string{"-c", filepath.Join(dir, "none.toml"), "--log-level", "loud"}, 1, "", "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)

			if code != tt.code {
				t.Errorf("run() = %d, expected %d (stderr: %s)", code, tt.code, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.stdout) {
				t.Errorf("stdout %q does not contain %q", stdout.String(), tt.stdout)
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("stderr %q does not contain %q", stderr.String(), tt.stderr)
			}
		})
	}
}

func TestWatchSignals_StopEndsGoroutine(t *testing.T) {
	var calls atomic.Int32
	stop := watchSignals(app.NewNullLogger(), func() { calls.Add(1) })

	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not return")
	}
	if calls.Load() != 0 {
		t.Errorf("shutdown called %d times without a signal", calls.Load())
	}
}

func TestWatchSignals_SignalCallsShutdown(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("cannot send SIGTERM to self on windows")
	}

	called := make(chan struct{})
	stop := watchSignals(app.NewNullLogger(), func() { close(called) })
	defer stop()

	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatal(err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("Signal() failed: %v", err)
	}

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("expected shutdown after SIGTERM")
	}
}
