// Package app provides the session shell for the x5 editor. It wires the
// editing engine to a terminal backend, the keymap and the configuration,
// and owns the single goroutine that mutates editor state.
package app

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/x5/internal/config"
	"github.com/dshills/x5/internal/engine"
	"github.com/dshills/x5/internal/input"
	"github.com/dshills/x5/internal/renderer"
	"github.com/dshills/x5/internal/renderer/backend"
)

// Application is the editing session. All fields below mu are owned by the
// goroutine running Run; other goroutines talk to it through backend
// interrupt events only.
type Application struct {
	mu sync.RWMutex

	backend  backend.Backend
	renderer *renderer.Renderer

	config  *config.Config
	handler *input.Handler
	doc     *Document

	logger  *Logger
	metrics *Metrics

	running atomic.Bool

	opts Options
}

// Options configures the application.
type Options struct {
	// File is the file to edit. Empty starts a scratch buffer.
	File string

	// Config holds the loaded settings. Nil uses config.Default().
	Config *config.Config

	// ConfigPath is reloaded when WatchConfig is set.
	ConfigPath string

	// WatchConfig reloads the configuration when ConfigPath changes.
	WatchConfig bool

	// Overrides are reapplied on top of every reloaded configuration.
	Overrides config.Overrides

	// Environ replaces the process environment for reloads. Nil uses the
	// process environment.
	Environ []string

	// Logger receives session logs. Nil discards them.
	Logger *Logger
}

// quitRequest asks the session loop to end.
type quitRequest struct{}

// reloadRequest asks the session loop to reload the configuration.
type reloadRequest struct{}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = NewNullLogger()
	}

	km, err := input.BuildKeymap(cfg.Keymap, cfg.Path)
	if err != nil {
		return nil, &InitError{Component: "keymap", Err: err}
	}
	handler, err := input.NewHandler(km)
	if err != nil {
		return nil, &InitError{Component: "keymap", Err: err}
	}

	doc, err := LoadDocument(opts.File, engine.WithWrapWidth(cfg.Editor.WrapWidth))
	if err != nil {
		return nil, err
	}

	app := &Application{
		config:  cfg,
		handler: handler,
		doc:     doc,
		logger:  logger,
		metrics: NewMetrics(),
		opts:    opts,
	}

	if doc.IsScratch() {
		logger.Info("editing scratch buffer")
	} else {
		logger.Info("editing %s (exists=%v, lines=%d)", doc.Path, doc.Exists(), doc.Engine.LineCount())
	}
	return app, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Shutdown asks a running session to end. It is safe to call from any
// goroutine, for example a signal handler.
func (app *Application) Shutdown() {
	if !app.running.Load() {
		return
	}
	app.post(quitRequest{})
}

// requestReload asks a running session to reload its configuration.
func (app *Application) requestReload() {
	if !app.running.Load() {
		return
	}
	app.post(reloadRequest{})
}

func (app *Application) post(data any) {
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()

	if b == nil {
		return
	}
	if err := b.PostEvent(backend.InterruptEvent(data)); err != nil {
		app.logger.Warn("post %T: %v", data, err)
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Document returns the edited document.
func (app *Application) Document() *Document {
	return app.doc
}

// Engine returns the document's editing engine.
func (app *Application) Engine() *engine.Engine {
	return app.doc.Engine
}

// Handler returns the key handler.
func (app *Application) Handler() *input.Handler {
	return app.handler
}

// Renderer returns the renderer. It is nil until Run starts.
func (app *Application) Renderer() *renderer.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.renderer
}

// Logger returns the session logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the session metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
