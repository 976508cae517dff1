package testsupport

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"img2gif/internal/engine"
)

// FakeGIF is the payload FakeEngine writes for every command output.
var FakeGIF = []byte("GIF89a\x01\x00\x01\x00")

// FakeEngine is an in-memory engine.Engine that records every call.
type FakeEngine struct {
	mu     sync.Mutex
	loaded bool
	files  map[string][]byte

	// LoadErr is returned by Load when set.
	LoadErr error
	// ExecErr is returned by Exec when set; no output is written.
	ExecErr error
	// OnExec, when set, runs before the default output write.
	OnExec func(args []string)
	// WriteErr, when set, is consulted before each WriteFile; a non-nil
	// result fails the write and nothing is stored.
	WriteErr func(name string) error
	// ReadErr is returned by ReadFile when set.
	ReadErr error

	Execs   [][]string
	Writes  []string
	Reads   []string
	Deletes []string
}

var _ engine.Engine = (*FakeEngine)(nil)

// NewFakeEngine returns an unloaded fake engine.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{files: make(map[string][]byte)}
}

// NewLoadedFakeEngine returns a fake engine that is already loaded.
func NewLoadedFakeEngine() *FakeEngine {
	e := NewFakeEngine()
	e.loaded = true
	return e
}

func (e *FakeEngine) Load(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.LoadErr != nil {
		return e.LoadErr
	}
	e.loaded = true
	return nil
}

func (e *FakeEngine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// Exec records args and writes FakeGIF to the last argument.
func (e *FakeEngine) Exec(_ context.Context, args []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return engine.ErrNotLoaded
	}
	e.Execs = append(e.Execs, slices.Clone(args))
	if e.OnExec != nil {
		e.OnExec(args)
	}
	if e.ExecErr != nil {
		return e.ExecErr
	}
	if len(args) > 0 {
		e.files[args[len(args)-1]] = slices.Clone(FakeGIF)
	}
	return nil
}

func (e *FakeEngine) WriteFile(_ context.Context, name string, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return engine.ErrNotLoaded
	}
	if e.WriteErr != nil {
		if err := e.WriteErr(name); err != nil {
			return err
		}
	}
	e.Writes = append(e.Writes, name)
	e.files[name] = slices.Clone(data)
	return nil
}

func (e *FakeEngine) ReadFile(_ context.Context, name string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return nil, engine.ErrNotLoaded
	}
	e.Reads = append(e.Reads, name)
	if e.ReadErr != nil {
		return nil, e.ReadErr
	}
	data, ok := e.files[name]
	if !ok {
		return nil, fmt.Errorf("read %s: file does not exist", name)
	}
	return slices.Clone(data), nil
}

func (e *FakeEngine) DeleteFile(_ context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return engine.ErrNotLoaded
	}
	e.Deletes = append(e.Deletes, name)
	if _, ok := e.files[name]; !ok {
		return fmt.Errorf("delete %s: file does not exist", name)
	}
	delete(e.files, name)
	return nil
}

// Names returns the stored file names in sorted order.
func (e *FakeEngine) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.files))
	for name := range e.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// File returns the stored bytes for name.
func (e *FakeEngine) File(name string) ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	data, ok := e.files[name]
	return data, ok
}
