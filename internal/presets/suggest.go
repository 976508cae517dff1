package presets

import (
	"fmt"
	"strings"

	"github.com/hbollon/go-edlib"
)

// minSuggestionScore is the Jaro-Winkler similarity below which no
// suggestion is offered.
const minSuggestionScore = 0.7

// Suggest returns the candidate most similar to input, or "" when nothing is
// close enough.
func Suggest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}
	best := ""
	bestScore := float32(0)
	for _, candidate := range candidates {
		score := edlib.JaroWinklerSimilarity(input, strings.ToLower(candidate))
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore < minSuggestionScore {
		return ""
	}
	return best
}

func unknownError(kind, id string, candidates []string) error {
	if hint := Suggest(id, candidates); hint != "" {
		return fmt.Errorf("unknown %s %q (did you mean %q?)", kind, id, hint)
	}
	return fmt.Errorf("unknown %s %q", kind, id)
}
