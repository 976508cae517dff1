package history

import (
	"fmt"
	"time"
)

// Status is the outcome of a recorded conversion.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	// StatusSkipped marks a convert call that soft-failed without output.
	StatusSkipped Status = "skipped"
)

// Entry is one recorded conversion.
type Entry struct {
	ID            string    `json:"id"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	Status        Status    `json:"status"`
	Format        string    `json:"format"`
	Inputs        []string  `json:"inputs"`
	OutputName    string    `json:"output_name,omitempty"`
	OutputPath    string    `json:"output_path,omitempty"`
	Frames        int       `json:"frames"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	FrameRate     float64   `json:"frame_rate"`
	Duration      float64   `json:"duration"`
	OutputBytes   int64     `json:"output_bytes"`
	Settings      string    `json:"settings,omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

// Elapsed returns how long the conversion took.
func (e *Entry) Elapsed() time.Duration {
	if e == nil || e.StartedAt.IsZero() || e.FinishedAt.Before(e.StartedAt) {
		return 0
	}
	return e.FinishedAt.Sub(e.StartedAt)
}

// Dimensions renders the canvas as WxH, or "" when unknown.
func (e *Entry) Dimensions() string {
	if e == nil || e.Width <= 0 || e.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// ListOptions filters List results.
type ListOptions struct {
	// Limit caps the number of entries; zero means no limit.
	Limit    int
	Statuses []Status
}
