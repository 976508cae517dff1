package pipeline

// State is the lifecycle position of a Converter.
type State int

const (
	StateEmpty State = iota
	StateFilesLoaded
	StateMp4Built
	StateGifBuilt
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateFilesLoaded:
		return "files_loaded"
	case StateMp4Built:
		return "mp4_built"
	case StateGifBuilt:
		return "gif_built"
	default:
		return "unknown"
	}
}
