package engine

import (
	"errors"

	"github.com/dshills/x5/internal/engine/buffer"
)

// Errors returned by engine operations.
var (
	// ErrOutOfBounds indicates the engine reached the buffer with a position
	// outside it. Commands clamp before touching the buffer, so this signals
	// a broken internal invariant.
	ErrOutOfBounds = buffer.ErrOutOfBounds

	// ErrUnknownCommand indicates a command kind the engine does not handle.
	ErrUnknownCommand = errors.New("unknown command")
)
