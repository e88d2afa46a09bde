package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/x5/internal/config/loader"
)

// Default values.
const (
	DefaultWrapWidth = 0
	DefaultLogLevel  = "info"
	DefaultFileName  = "config.toml"
)

// Config holds the decoded editor settings.
type Config struct {
	Editor EditorConfig
	Log    LogConfig

	// Keymap maps key specifications to action names. It only holds
	// overrides; the built-in bindings live in package input.
	Keymap map[string]string

	// Path is the config file that was consulted; FileFound reports
	// whether it existed.
	Path      string
	FileFound bool
}

// EditorConfig holds the [editor] section.
type EditorConfig struct {
	// WrapWidth is the soft wrap column. 0 follows the terminal width
	// and a negative value disables wrapping.
	WrapWidth int
}

// LogConfig holds the [log] section.
type LogConfig struct {
	Level string
	File  string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{WrapWidth: DefaultWrapWidth},
		Log:    LogConfig{Level: DefaultLogLevel},
		Keymap: make(map[string]string),
	}
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/x5/config.toml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "x5", DefaultFileName), nil
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs      loader.FileSystem
	environ []string
	useEnv  bool
}

// WithFS reads the config file from fsys instead of the OS.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnviron reads environment settings from environ instead of the
// process environment.
func WithEnviron(environ []string) Option {
	return func(o *loadOptions) {
		o.environ = environ
		o.useEnv = true
	}
}

// Load builds a Config from defaults, the file at path and the
// environment, in that order of precedence. An empty path skips the file
// layer. A missing file is not an error.
func Load(path string, opts ...Option) (*Config, error) {
	o := loadOptions{fs: loader.DefaultFS()}
	for _, opt := range opts {
		opt(&o)
	}

	merged := defaultMap()
	cfg := Default()
	cfg.Path = path

	if path != "" {
		fl, err := loader.ForPathWithFS(o.fs, path)
		if err != nil {
			return nil, err
		}
		fileMap, err := fl.Load()
		if err != nil {
			return nil, err
		}
		if fileMap != nil {
			cfg.FileFound = true
			merged = loader.DeepMerge(merged, fileMap)
		}
	}

	env := loader.NewEnvLoader(loader.DefaultEnvPrefix)
	if o.useEnv {
		env = loader.NewEnvLoaderWithEnviron(loader.DefaultEnvPrefix, o.environ)
	}
	envMap, err := env.Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, envMap)

	if err := cfg.decode(merged); err != nil {
		if path != "" {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultMap returns the defaults in map form, the bottom merge layer.
func defaultMap() map[string]any {
	return map[string]any{
		"editor": map[string]any{"wrap_width": int64(DefaultWrapWidth)},
		"log":    map[string]any{"level": DefaultLogLevel, "file": ""},
		"keymap": map[string]any{},
	}
}

// Overrides holds command line values. Nil fields are not set.
type Overrides struct {
	WrapWidth *int
	LogLevel  *string
	LogFile   *string
}

// ApplyOverrides applies command line values on top of c.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.WrapWidth != nil {
		c.Editor.WrapWidth = *o.WrapWidth
	}
	if o.LogLevel != nil {
		c.Log.Level = strings.ToLower(*o.LogLevel)
	}
	if o.LogFile != nil {
		c.Log.File = *o.LogFile
	}
}

// validLevels are the accepted log.level values.
var validLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks every setting. It returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, invalid("log.level", "must be one of debug, info, warn, error", c.Log.Level))
	}
	for spec, action := range c.Keymap {
		if strings.TrimSpace(spec) == "" {
			errs = append(errs, invalid("keymap", "empty key specification", action))
		}
		if strings.TrimSpace(action) == "" {
			errs = append(errs, invalid("keymap."+spec, "empty action", nil))
		}
	}
	return errors.Join(errs...)
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Keymap = maps.Clone(c.Keymap)
	return &out
}
