package app

import (
	"fmt"
	"runtime/debug"

	"github.com/dshills/x5/internal/config"
	"github.com/dshills/x5/internal/config/watcher"
	"github.com/dshills/x5/internal/input"
	"github.com/dshills/x5/internal/renderer"
)

// Run starts the session loop and blocks until the session ends. The
// terminal is restored on every exit path; a panic is re-raised after the
// terminal has been released.
func (app *Application) Run() (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()
	defer func() {
		if r := recover(); r != nil {
			b.Shutdown()
			app.logger.Error("%v", &RecoveredPanicError{Value: r, Stack: string(debug.Stack())})
			panic(r)
		}
	}()

	app.mu.Lock()
	app.renderer = renderer.New(b)
	app.mu.Unlock()

	if app.opts.WatchConfig && app.opts.ConfigPath != "" {
		w, err := app.startWatcher(app.opts.ConfigPath)
		if err != nil {
			app.logger.WithComponent("config").Warn("live reload disabled: %v", err)
		} else {
			defer func() { _ = w.Stop() }()
		}
	}

	width, height := b.Size()
	app.doc.Engine.Resize(width, height)
	app.logger.Info("session started (%dx%d)", width, height)

	err = app.eventLoop()
	app.logger.Info("session ended: %s", app.metrics.Snapshot())
	return err
}

// startWatcher watches path and turns every change into a reload request.
func (app *Application) startWatcher(path string) (*watcher.Watcher, error) {
	log := app.logger.WithComponent("config")

	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		log.Warn("watch: %v", err)
	}))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}
	w.OnChange(func(ev watcher.Event) {
		log.Debug("%s %s", ev.Op, ev.Path)
		app.requestReload()
	})
	w.Start()
	return w, nil
}

// reloadConfig loads the configuration again and applies wrap width, log
// level and keymap. On any error the current settings stay in effect.
func (app *Application) reloadConfig() error {
	var opts []config.Option
	if app.opts.Environ != nil {
		opts = append(opts, config.WithEnviron(app.opts.Environ))
	}
	cfg, err := config.Load(app.opts.ConfigPath, opts...)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	cfg.ApplyOverrides(app.opts.Overrides)

	km, err := input.BuildKeymap(cfg.Keymap, cfg.Path)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	if err := app.handler.SetKeymap(km); err != nil {
		return fmt.Errorf("reload config: %w", err)
	}

	app.doc.Engine.SetWrapWidth(cfg.Editor.WrapWidth)
	app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	if cfg.Log.File != app.config.Log.File {
		app.logger.Warn("log.file changed to %q; takes effect on restart", cfg.Log.File)
	}

	app.config = cfg
	app.metrics.RecordReload()
	return nil
}
