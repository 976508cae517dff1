package presets

import (
	"fmt"
	"strconv"
	"strings"
)

// autoHeight is appended to width-only scale values.
const autoHeight = ":-1"

// NormalizeScale turns a width-only value into a W:H pair. A blank value
// (the "source" option) keeps the input width.
func NormalizeScale(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "iw" + autoHeight
	}
	if !strings.Contains(value, ":") {
		return value + autoHeight
	}
	return value
}

// ValidateScale checks a normalized W:H value. Each side must be an integer
// of at least -2 (ffmpeg's aspect-preserving markers), a positive size, or
// one of the input dimensions iw/ih.
func ValidateScale(value string) error {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return fmt.Errorf("scale %q: expected WIDTH:HEIGHT", value)
	}
	for i, part := range parts {
		side := "width"
		if i == 1 {
			side = "height"
		}
		part = strings.TrimSpace(part)
		switch part {
		case "iw", "ih":
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("scale %q: %s %q is not an integer", value, side, part)
		}
		if n == 0 || n < -2 {
			return fmt.Errorf("scale %q: %s must be positive, -1 or -2", value, side)
		}
	}
	return nil
}
