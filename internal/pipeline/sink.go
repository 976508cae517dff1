package pipeline

// Sink receives the human-readable transcript of executed commands.
type Sink interface {
	Append(line string)
}

// ProgressSink receives the completed fraction of a conversion, from 0 to 1.
type ProgressSink interface {
	SetProgress(fraction float64)
}

type nopSink struct{}

func (nopSink) Append(string) {}

type nopProgress struct{}

func (nopProgress) SetProgress(float64) {}
