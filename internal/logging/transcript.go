package logging

import (
	"io"
	"strings"
	"sync"
)

// Transcript is a goroutine-safe line log. When a writer is attached every
// appended line is also written there.
type Transcript struct {
	mu    sync.Mutex
	lines []string
	tee   io.Writer
}

// NewTranscript returns a transcript that mirrors lines to tee when non-nil.
func NewTranscript(tee io.Writer) *Transcript {
	return &Transcript{tee: tee}
}

// Append records one line. Multi-line input is split so Lines stays one
// entry per line.
func (t *Transcript) Append(line string) {
	line = strings.TrimRight(line, "\n")
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, part := range strings.Split(line, "\n") {
		t.lines = append(t.lines, part)
		if t.tee != nil {
			_, _ = io.WriteString(t.tee, part+"\n")
		}
	}
}

// Lines returns a copy of the recorded lines.
func (t *Transcript) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}

// String joins the recorded lines with newlines.
func (t *Transcript) String() string {
	return strings.Join(t.Lines(), "\n")
}

// Reset drops all recorded lines.
func (t *Transcript) Reset() {
	t.mu.Lock()
	t.lines = nil
	t.mu.Unlock()
}
