package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var trailingIndex = regexp.MustCompile(`^(.+)_\d+(\.[^.]+)$`)

// SplitName returns the base name and extension (without dot) of a filename.
// Directory components are discarded and the base is NFC-normalized.
func SplitName(name string) (string, string) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return "", ""
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if base == "" {
		// dotfiles such as ".png" have no extension, only a base
		base, ext = name, ""
	}
	return norm.NFC.String(base), strings.TrimPrefix(ext, ".")
}

// IndexedFilenames returns one virtual filename per input name. Each name
// keeps its own base and extension: ["a.png", "b.jpg"] becomes
// ["a_1.png", "b_2.jpg"].
func IndexedFilenames(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		base, ext := SplitName(name)
		out[i] = join(base, i+1, ext)
	}
	return out
}

// SequenceFilenames indexes every name against the first name's base and
// extension so the whole batch matches a single SequencePattern.
func SequenceFilenames(names []string) []string {
	if len(names) == 0 {
		return []string{}
	}
	base, ext := SplitName(names[0])
	out := make([]string, len(names))
	for i := range names {
		out[i] = join(base, i+1, ext)
	}
	return out
}

// SequencePattern converts an indexed filename into the printf pattern the
// sequential frame reader expects. Only the trailing _<digits> segment before
// the extension is replaced, so "v2_1.png" becomes "v2_%d.png". Names without
// a trailing index are returned unchanged. A literal % in the base or
// extension is escaped as %% so the reader sees a single conversion.
func SequencePattern(name string) string {
	m := trailingIndex.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	return escapePercent(m[1]) + "_%d" + escapePercent(m[2])
}

func escapePercent(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

// OutputFilename derives <inputBase>.<ext> for a transcoder output.
func OutputFilename(input, ext string) string {
	base, _ := SplitName(input)
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return base
	}
	return base + "." + ext
}

func join(base string, index int, ext string) string {
	if ext == "" {
		return fmt.Sprintf("%s_%d", base, index)
	}
	return fmt.Sprintf("%s_%d.%s", base, index, ext)
}
