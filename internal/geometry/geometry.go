// Package geometry builds the ffmpeg filter chain that fits every frame of an
// image sequence onto one canvas.
package geometry

import (
	"fmt"
	"strings"
)

// DefaultPadColor is fully transparent white.
const DefaultPadColor = "ffffff00"

// Canvas is the target frame size, usually the batch maximum.
type Canvas struct {
	Width  int
	Height int
}

// FitFilter returns a comma-joined filter chain that converts frames to RGBA,
// scales them against the canvas aspect ratio, crops oversize dimensions
// around the centre and pads to exactly width x height with padColor.
//
// The scale and crop sizes are ffmpeg expressions evaluated per frame, so one
// chain serves a sequence of mixed-size images.
func FitFilter(width, height int, padColor string) string {
	padColor = strings.TrimSpace(padColor)
	if padColor == "" {
		padColor = DefaultPadColor
	}
	ratio := fmt.Sprintf("%d/%d", width, height)
	stages := []string{
		"format=rgba",
		fmt.Sprintf("scale=w='if(gt(a,%s),%d,%d*(iw/ih))':h='if(gt(a,%s),%d/(iw/ih),%d)'",
			ratio, width, height, ratio, width, height),
		fmt.Sprintf("crop=w='min(iw,%d)':h='min(ih,%d)':x='(iw-ow)/2':y='(ih-oh)/2'", width, height),
		fmt.Sprintf("pad=w=%d:h=%d:x='(ow-iw)/2':y='(oh-ih)/2':color=%s", width, height, padColor),
	}
	return strings.Join(stages, ",")
}

// Filter is FitFilter for the canvas.
func (c Canvas) Filter(padColor string) string {
	return FitFilter(c.Width, c.Height, padColor)
}

// Empty reports whether the canvas has no area.
func (c Canvas) Empty() bool {
	return c.Width <= 0 || c.Height <= 0
}
