package presets

import "strings"

// Selection maps category ids to chosen options and remembers insertion
// order, which the compiler uses when no template category is present.
// The zero value is ready to use.
type Selection struct {
	keys   []string
	values map[string]Option
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{values: make(map[string]Option)}
}

// Set stores opt under category. Replacing an existing category keeps its
// original position.
func (s *Selection) Set(category string, opt Option) {
	if s.values == nil {
		s.values = make(map[string]Option)
	}
	if _, exists := s.values[category]; !exists {
		s.keys = append(s.keys, category)
	}
	s.values[category] = opt
}

// Get returns the option chosen for category.
func (s *Selection) Get(category string) (Option, bool) {
	if s == nil {
		return Option{}, false
	}
	opt, ok := s.values[category]
	return opt, ok
}

// Value returns the chosen value for category, or "" when absent.
func (s *Selection) Value(category string) string {
	opt, _ := s.Get(category)
	return opt.Value
}

// Has reports whether category is selected.
func (s *Selection) Has(category string) bool {
	_, ok := s.Get(category)
	return ok
}

// Delete removes category from the selection.
func (s *Selection) Delete(category string) {
	if s == nil {
		return
	}
	if _, ok := s.values[category]; !ok {
		return
	}
	delete(s.values, category)
	for i, key := range s.keys {
		if key == category {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the selected categories in insertion order.
func (s *Selection) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Len returns the number of selected categories.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Clone returns an independent copy.
func (s *Selection) Clone() *Selection {
	out := NewSelection()
	if s == nil {
		return out
	}
	for _, key := range s.keys {
		out.Set(key, s.values[key])
	}
	return out
}

// CreateSettingsFromString wraps a raw argument string as a one-category
// selection. An empty value yields an empty selection; key defaults to
// "custom".
func CreateSettingsFromString(value, key string) *Selection {
	sel := NewSelection()
	if value == "" {
		return sel
	}
	if strings.TrimSpace(key) == "" {
		key = "custom"
	}
	sel.Set(key, Option{ID: key, Label: "Custom", Value: value})
	return sel
}

// SettingsIsForFormat reports whether any selected option id is namespaced
// with formatID (for example "gif-scale-320" for "gif").
func SettingsIsForFormat(sel *Selection, formatID string) bool {
	if sel == nil || formatID == "" {
		return false
	}
	for _, key := range sel.keys {
		if strings.HasPrefix(sel.values[key].ID, formatID) {
			return true
		}
	}
	return false
}
