package pipeline

import (
	"math"
	"strconv"
	"strings"

	"img2gif/internal/presets"
)

// fallbackDuration is used when the selected duration is absent, not a
// number, or not positive.
const fallbackDuration = 1.0

// Duration returns the selected GIF duration in seconds.
func Duration(sel *presets.Selection) float64 {
	value := strings.TrimSpace(sel.Value(presets.CategoryDuration))
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return fallbackDuration
	}
	return seconds
}

// FrameRate spreads frames evenly across the selected duration.
func FrameRate(frames int, sel *presets.Selection) float64 {
	return float64(frames) / Duration(sel)
}

// IntermediateArgs builds the stage 1 command: an image2 sequence read at fps,
// passed through filter and encoded with codec without audio.
func IntermediateArgs(pattern string, fps float64, filter, codec, output string) []string {
	return []string{
		"-framerate", formatRate(fps),
		"-f", "image2",
		"-i", pattern,
		"-vf", filter,
		"-c:v", codec,
		"-an",
		output,
	}
}

func formatRate(fps float64) string {
	return strconv.FormatFloat(fps, 'f', -1, 64)
}
