package app

import (
	"errors"

	"github.com/dshills/x5/internal/input"
	"github.com/dshills/x5/internal/renderer"
	"github.com/dshills/x5/internal/renderer/backend"
)

// eventLoop draws a frame, blocks for the next event and applies it, until
// the session ends.
func (app *Application) eventLoop() error {
	b := app.backend
	for {
		app.draw()

		ev := b.PollEvent()
		if err := app.handleBackendEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// draw renders the engine state and paints it.
func (app *Application) draw() {
	timer := StartTimer()

	width, height := app.backend.Size()
	frame, err := renderer.Render(app.doc.Engine, width, height)
	if err != nil {
		app.logger.WithComponent("renderer").Error("%v", err)
		return
	}
	if !app.renderer.Draw(frame) {
		app.metrics.RecordSkippedFrame()
		return
	}
	app.metrics.RecordFrame(timer.Elapsed())
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the session should end.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventInterrupt:
		return app.handleInterrupt(ev)
	case backend.EventClosed:
		return ErrQuit
	default:
		return nil
	}
}

// handleKeyEvent decodes a key press and performs its action.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	app.metrics.RecordKey()

	action := app.handler.Handle(ev)
	switch action.Kind {
	case input.ActionCommand:
		err := app.doc.Engine.Apply(action.Command)
		app.metrics.RecordCommand(err)
		if err != nil {
			// Commands clamp before reaching the buffer; a failure here is
			// an internal bug and is never shown on screen.
			app.logger.WithComponent("engine").Error("apply %s: %v", action.Command, err)
		}
		if app.doc.Engine.ShouldQuit() {
			if app.doc.IsModified() {
				app.logger.Warn("quit with unsaved changes")
			}
			return ErrQuit
		}
	case input.ActionSave:
		app.save()
	case input.ActionRedraw:
		app.renderer.Invalidate()
	}
	return nil
}

// save writes the document. Failures are logged; the session goes on.
func (app *Application) save() {
	err := app.doc.Save()
	switch {
	case errors.Is(err, ErrNoFilePath):
		app.logger.Warn("save: scratch buffer has no file path")
	case err != nil:
		app.logger.Error("%v", err)
	default:
		app.metrics.RecordSave()
		app.logger.Info("saved %s (%d chars)", app.doc.Path, app.doc.Engine.CharCount())
	}
}

// handleResize processes terminal resize events.
func (app *Application) handleResize(ev backend.Event) error {
	app.doc.Engine.Resize(ev.Width, ev.Height)
	app.renderer.Invalidate()
	app.logger.Debug("resize %dx%d", ev.Width, ev.Height)
	return nil
}

// handleInterrupt processes requests posted from other goroutines.
func (app *Application) handleInterrupt(ev backend.Event) error {
	switch ev.Data.(type) {
	case quitRequest:
		app.logger.Info("shutdown requested")
		return ErrQuit
	case reloadRequest:
		if err := app.reloadConfig(); err != nil {
			app.logger.WithComponent("config").Warn("%v", err)
			return nil
		}
		app.logger.WithComponent("config").Info("configuration reloaded")
	}
	return nil
}
