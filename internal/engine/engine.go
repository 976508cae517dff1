// Package engine defines the transcoding engine contract the pipeline runs
// against: a command executor with a private, session-scoped file store.
package engine

import (
	"context"
	"errors"
)

// ErrNotLoaded is returned by engine operations attempted before Load.
var ErrNotLoaded = errors.New("engine not loaded")

// ErrInvalidName is returned for store names that are empty or contain path
// separators.
var ErrInvalidName = errors.New("invalid file name")

// Engine executes transcoder commands against its own file namespace.
// Implementations run one command at a time.
type Engine interface {
	// Load prepares the engine. Calling Load on a loaded engine is a no-op.
	Load(ctx context.Context) error
	// Loaded reports whether Load has completed.
	Loaded() bool
	// Exec runs one command to completion.
	Exec(ctx context.Context, args []string) error
	WriteFile(ctx context.Context, name string, data []byte) error
	ReadFile(ctx context.Context, name string) ([]byte, error)
	DeleteFile(ctx context.Context, name string) error
}
