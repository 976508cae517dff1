package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"img2gif/internal/engine"
)

// writeStubFFmpeg installs a shell script that records its arguments and
// writes a fake GIF to its last argument.
func writeStubFFmpeg(t *testing.T, body string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	if body == "" {
		body = "printf '%s\\n' \"$@\" > \"$ARGS_FILE\"\nfor last; do :; done\nprintf 'GIF89a' > \"$last\"\n"
	}
	path := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("ARGS_FILE", argsFile)
	return path, argsFile
}

func newLoadedEngine(t *testing.T, binary string) *Engine {
	t.Helper()
	e := New(Options{Binary: binary, WorkRoot: t.TempDir(), LockTimeout: time.Second})
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestLoadCreatesSessionDir(t *testing.T) {
	binary, _ := writeStubFFmpeg(t, "")
	root := t.TempDir()
	e := New(Options{Binary: binary, WorkRoot: root, SessionID: "s1"})
	if e.Loaded() {
		t.Fatal("engine should not be loaded before Load")
	}
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("second Load should be a no-op: %v", err)
	}
	if e.Dir() != filepath.Join(root, "s1") {
		t.Fatalf("unexpected session dir %q", e.Dir())
	}
	if info, err := os.Stat(e.Dir()); err != nil || !info.IsDir() {
		t.Fatalf("session dir missing: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "s1")); !os.IsNotExist(err) {
		t.Fatal("expected session dir to be removed")
	}
	if e.Loaded() {
		t.Fatal("engine should be unloaded after Close")
	}
}

func TestLoadFailsForMissingBinary(t *testing.T) {
	e := New(Options{Binary: "definitely-not-ffmpeg", WorkRoot: t.TempDir()})
	if err := e.Load(context.Background()); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected missing binary error, got %v", err)
	}
	if e.Loaded() {
		t.Fatal("engine must stay unloaded")
	}
}

func TestOperationsRequireLoad(t *testing.T) {
	e := New(Options{WorkRoot: t.TempDir()})
	ctx := context.Background()
	if err := e.Exec(ctx, []string{"-version"}); !errors.Is(err, engine.ErrNotLoaded) {
		t.Fatalf("Exec: expected ErrNotLoaded, got %v", err)
	}
	if err := e.WriteFile(ctx, "a.png", nil); !errors.Is(err, engine.ErrNotLoaded) {
		t.Fatalf("WriteFile: expected ErrNotLoaded, got %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	binary, _ := writeStubFFmpeg(t, "")
	e := newLoadedEngine(t, binary)
	ctx := context.Background()

	if err := e.WriteFile(ctx, "test_1.png", []byte{1, 2, 3}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := e.ReadFile(ctx, "test_1.png")
	if err != nil || string(data) != "\x01\x02\x03" {
		t.Fatalf("ReadFile = %v, %v", data, err)
	}
	if err := e.DeleteFile(ctx, "test_1.png"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if err := e.DeleteFile(ctx, "test_1.png"); err == nil {
		t.Fatal("expected error deleting a missing file")
	}
	for _, name := range []string{"", "../x.png", "a/b.png", "..", lockFileName} {
		if err := e.WriteFile(ctx, name, nil); !errors.Is(err, engine.ErrInvalidName) {
			t.Errorf("WriteFile(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestExecRunsInSessionDir(t *testing.T) {
	binary, argsFile := writeStubFFmpeg(t, "")
	e := newLoadedEngine(t, binary)
	ctx := context.Background()

	if err := e.Exec(ctx, []string{"-i", "temp.mp4", "test.gif"}); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	recorded, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	want := "-hide_banner\n-nostdin\n-y\n-loglevel\nerror\n-i\ntemp.mp4\ntest.gif\n"
	if string(recorded) != want {
		t.Fatalf("recorded args = %q, want %q", recorded, want)
	}
	out, err := e.ReadFile(ctx, "test.gif")
	if err != nil || string(out) != "GIF89a" {
		t.Fatalf("expected output in session dir, got %q, %v", out, err)
	}
}

func TestExecReportsCommandOutput(t *testing.T) {
	binary, _ := writeStubFFmpeg(t, "echo 'Invalid argument' >&2\nexit 1\n")
	e := newLoadedEngine(t, binary)
	err := e.Exec(context.Background(), []string{"-i", "missing.mp4", "out.gif"})
	if err == nil || !strings.Contains(err.Error(), "Invalid argument") {
		t.Fatalf("expected ffmpeg stderr in error, got %v", err)
	}
}

func TestExecRespectsCancellationBeforeStart(t *testing.T) {
	binary, argsFile := writeStubFFmpeg(t, "")
	e := newLoadedEngine(t, binary)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := e.Exec(ctx, []string{"x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(argsFile); !os.IsNotExist(err) {
		t.Fatal("command must not start after cancellation")
	}
}

func TestExecFinishesAfterCancellation(t *testing.T) {
	binary, _ := writeStubFFmpeg(t, "")
	e := newLoadedEngine(t, binary)

	ctx, cancel := context.WithCancel(context.Background())
	var sawCancelled bool
	e.WithCommandRunner(func(runCtx context.Context, dir, name string, args ...string) error {
		cancel()
		sawCancelled = runCtx.Err() != nil
		return nil
	})
	if err := e.Exec(ctx, []string{"x"}); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if sawCancelled {
		t.Fatal("running command must not observe caller cancellation")
	}
}

func TestExecWaitsForWorkRootLock(t *testing.T) {
	binary, _ := writeStubFFmpeg(t, "")
	root := t.TempDir()
	first := New(Options{Binary: binary, WorkRoot: root, LockTimeout: 200 * time.Millisecond})
	second := New(Options{Binary: binary, WorkRoot: root, LockTimeout: 200 * time.Millisecond})
	ctx := context.Background()
	for _, e := range []*Engine{first, second} {
		if err := e.Load(ctx); err != nil {
			t.Fatalf("Load: %v", err)
		}
		t.Cleanup(func() { _ = e.Close() })
	}

	var innerErr error
	first.WithCommandRunner(func(context.Context, string, string, ...string) error {
		innerErr = second.Exec(ctx, []string{"x"})
		return nil
	})
	if err := first.Exec(ctx, []string{"x"}); err != nil {
		t.Fatalf("first Exec: %v", err)
	}
	if innerErr == nil || !strings.Contains(innerErr.Error(), "lock") {
		t.Fatalf("expected lock timeout for concurrent engine, got %v", innerErr)
	}
}
