package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"img2gif/internal/deps"
	"img2gif/internal/engine"
	"img2gif/internal/fileutil"
	"img2gif/internal/logging"
)

const (
	lockFileName   = ".img2gif.lock"
	lockRetryDelay = 100 * time.Millisecond
)

// commandRunner executes name with args inside dir.
type commandRunner func(ctx context.Context, dir, name string, args ...string) error

// Options configures an Engine.
type Options struct {
	Binary      string
	WorkRoot    string
	SessionID   string
	LockTimeout time.Duration
	Logger      *slog.Logger
}

// Engine runs ffmpeg against a session directory.
type Engine struct {
	binary      string
	root        string
	sessionID   string
	lockTimeout time.Duration
	logger      *slog.Logger
	run         commandRunner

	mu     sync.Mutex
	dir    string
	lock   *flock.Flock
	loaded bool
}

var _ engine.Engine = (*Engine)(nil)

// New constructs an engine. Nothing touches the filesystem until Load.
func New(opts Options) *Engine {
	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	sessionID := strings.TrimSpace(opts.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return &Engine{
		binary:      binary,
		root:        strings.TrimSpace(opts.WorkRoot),
		sessionID:   sessionID,
		lockTimeout: opts.LockTimeout,
		logger:      logging.NewComponentLogger(opts.Logger, "ffmpeg"),
		run:         defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (e *Engine) WithCommandRunner(r commandRunner) {
	if e != nil && r != nil {
		e.run = r
	}
}

// SessionID returns the identifier of the engine's session directory.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// Dir returns the session directory, or "" before Load.
func (e *Engine) Dir() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dir
}

// Load verifies the ffmpeg binary and creates the session directory.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loaded {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.root == "" {
		return errors.New("ffmpeg engine: work root is required")
	}
	status := deps.CheckBinaries([]deps.Requirement{{Name: "FFmpeg", Command: e.binary}})[0]
	if !status.Available {
		return fmt.Errorf("ffmpeg engine: %s", status.Detail)
	}
	dir := filepath.Join(e.root, e.sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ffmpeg engine: create session dir: %w", err)
	}
	e.binary = status.Command
	e.dir = dir
	e.lock = flock.New(filepath.Join(e.root, lockFileName))
	e.loaded = true
	e.logger.Debug("ffmpeg engine loaded",
		logging.String("binary", e.binary),
		logging.String("session_dir", dir),
	)
	return nil
}

// Loaded reports whether Load has completed.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// Exec runs ffmpeg with args in the session directory.
func (e *Engine) Exec(ctx context.Context, args []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return engine.ErrNotLoaded
	}
	unlock, err := e.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	full := append([]string{"-hide_banner", "-nostdin", "-y", "-loglevel", "error"}, args...)
	started := time.Now()
	if err := e.run(context.WithoutCancel(ctx), e.dir, e.binary, full...); err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	e.logger.Debug("ffmpeg command finished",
		logging.Strings("args", args),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func (e *Engine) acquire(ctx context.Context) (func(), error) {
	lockCtx := ctx
	if e.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, e.lockTimeout)
		defer cancel()
	}
	ok, err := e.lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("acquire engine lock: %w", err)
	}
	if !ok {
		return nil, errors.New("acquire engine lock: another conversion holds the work directory")
	}
	return func() {
		if err := e.lock.Unlock(); err != nil {
			e.logger.Warn("failed to release engine lock", logging.Error(err))
		}
	}, nil
}

// WriteFile stores data under name in the session directory.
func (e *Engine) WriteFile(_ context.Context, name string, data []byte) error {
	path, err := e.path(name)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

// ReadFile returns the contents of name.
func (e *Engine) ReadFile(_ context.Context, name string) ([]byte, error) {
	path, err := e.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// DeleteFile removes name. Deleting a missing file is an error.
func (e *Engine) DeleteFile(_ context.Context, name string) error {
	path, err := e.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}

// Close removes the session directory. The engine must be loaded again
// before further use.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return nil
	}
	e.loaded = false
	dir := e.dir
	e.dir = ""
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove session dir: %w", err)
	}
	return nil
}

func (e *Engine) path(name string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return "", engine.ErrNotLoaded
	}
	if !validName(name) {
		return "", fmt.Errorf("%w: %q", engine.ErrInvalidName, name)
	}
	return filepath.Join(e.dir, name), nil
}

func validName(name string) bool {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.HasPrefix(name, lockFileName)
}

func defaultCommandRunner(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
