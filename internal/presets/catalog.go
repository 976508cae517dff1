package presets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Well-known category identifiers.
const (
	CategoryQuality  = "filter_complex"
	CategoryDuration = "duration"
	CategoryScale    = "scale"
	CategoryLoop     = "loop"
)

// InputNumber marks input options that accept numeric custom values.
const InputNumber = "number"

// Option is one selectable value of a category. Value is either a literal
// argument fragment or a template with {category} placeholders.
type Option struct {
	ID        string
	Label     string
	Value     string
	IsDefault bool
	IsInput   bool
	InputType string
}

// Category is one axis of the transcoding operation.
type Category struct {
	ID      string
	Label   string
	Value   string
	Options []Option
}

// Option returns the option with the given id.
func (c Category) Option(id string) (Option, bool) {
	for _, opt := range c.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// DefaultOption returns the option flagged as default, falling back to the
// first option. ok is false for a category without options.
func (c Category) DefaultOption() (Option, bool) {
	for _, opt := range c.Options {
		if opt.IsDefault {
			return opt, true
		}
	}
	if len(c.Options) == 0 {
		return Option{}, false
	}
	return c.Options[0], true
}

// InputOption returns the option that accepts custom values, if any.
func (c Category) InputOption() (Option, bool) {
	for _, opt := range c.Options {
		if opt.IsInput {
			return opt, true
		}
	}
	return Option{}, false
}

// Choice references an option by id and optionally overrides its value.
type Choice struct {
	OptionID string
	Value    string
}

// Format describes an output target and the settings it selects by default.
type Format struct {
	ID             string
	Label          string
	Value          string
	Ext            string
	MIMEType       string
	IsDefault      bool
	IsCustomPreset bool
	Settings       map[string]Choice
}

// Catalog is the full set of categories and formats available to a caller.
type Catalog struct {
	Categories []Category
	Formats    []Format
}

// Category returns the category with the given id.
func (c Catalog) Category(id string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// CategoryIDs lists category ids in catalog order.
func (c Catalog) CategoryIDs() []string {
	ids := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		ids = append(ids, cat.ID)
	}
	return ids
}

// Format looks up a format by id. Unknown ids produce an error that names the
// closest known id.
func (c Catalog) Format(id string) (Format, error) {
	id = strings.TrimSpace(id)
	ids := make([]string, 0, len(c.Formats))
	for _, f := range c.Formats {
		if f.ID == id {
			return f, nil
		}
		ids = append(ids, f.ID)
	}
	return Format{}, unknownError("format", id, ids)
}

// DefaultFormat returns the format flagged as default, else the first one.
func (c Catalog) DefaultFormat() (Format, bool) {
	for _, f := range c.Formats {
		if f.IsDefault {
			return f, true
		}
	}
	if len(c.Formats) == 0 {
		return Format{}, false
	}
	return c.Formats[0], true
}

// WithFormats returns a copy of the catalog with extra formats appended.
// Each extra format must pass ValidatePreset and must not reuse an id.
func (c Catalog) WithFormats(extra ...Format) (Catalog, error) {
	out := Catalog{
		Categories: append([]Category(nil), c.Categories...),
		Formats:    append([]Format(nil), c.Formats...),
	}
	for _, f := range extra {
		if err := out.ValidatePreset(f); err != nil {
			return Catalog{}, err
		}
		if _, err := out.Format(f.ID); err == nil {
			return Catalog{}, fmt.Errorf("preset %q: id already defined", f.ID)
		}
		f.IsCustomPreset = true
		f.IsDefault = false
		out.Formats = append(out.Formats, f)
	}
	return out, nil
}

// Resolve builds the selection a format implies: for every catalog category
// the format mentions, the referenced option (or the category default, or the
// first option) is chosen and any inline override value replaces its value.
// Categories the format does not mention are left out.
func (c Catalog) Resolve(f Format) *Selection {
	sel := NewSelection()
	for _, cat := range c.Categories {
		choice, ok := f.Settings[cat.ID]
		if !ok || strings.TrimSpace(choice.OptionID) == "" {
			continue
		}
		opt, found := cat.Option(choice.OptionID)
		if !found {
			opt, found = cat.DefaultOption()
		}
		if !found {
			continue
		}
		if choice.Value != "" {
			opt.Value = choice.Value
		}
		sel.Set(cat.ID, opt)
	}
	return sel
}

// Choose applies a user choice to sel. ref is an option id of the category or,
// for categories with an input option, a custom literal value.
func (c Catalog) Choose(sel *Selection, categoryID, ref string) error {
	if sel == nil {
		return errors.New("choose setting: nil selection")
	}
	categoryID = strings.TrimSpace(categoryID)
	cat, ok := c.Category(categoryID)
	if !ok {
		return unknownError("setting", categoryID, c.CategoryIDs())
	}
	ref = strings.TrimSpace(ref)
	if opt, ok := cat.Option(ref); ok {
		if opt.IsInput {
			return fmt.Errorf("setting %s: option %q needs a value", cat.ID, ref)
		}
		sel.Set(cat.ID, opt)
		return nil
	}
	input, ok := cat.InputOption()
	if !ok {
		ids := make([]string, 0, len(cat.Options))
		for _, opt := range cat.Options {
			ids = append(ids, opt.ID)
		}
		return unknownError(cat.ID+" option", ref, ids)
	}
	if input.InputType == InputNumber {
		if _, err := strconv.ParseFloat(ref, 64); err != nil {
			return fmt.Errorf("setting %s: %q is not a number", cat.ID, ref)
		}
	}
	input.Value = ref
	sel.Set(cat.ID, input)
	return nil
}

// ValidatePreset reports whether f is usable as a custom format.
func (c Catalog) ValidatePreset(f Format) error {
	if !IsCustomPreset(f) {
		return fmt.Errorf("preset %q: id, label, ext and settings are required", f.ID)
	}
	for categoryID, choice := range f.Settings {
		cat, ok := c.Category(categoryID)
		if !ok {
			return fmt.Errorf("preset %q: %w", f.ID, unknownError("setting", categoryID, c.CategoryIDs()))
		}
		if choice.OptionID == "" {
			return fmt.Errorf("preset %q: setting %s has no option id", f.ID, categoryID)
		}
		if _, ok := cat.Option(choice.OptionID); !ok && choice.Value == "" {
			return fmt.Errorf("preset %q: setting %s references unknown option %q", f.ID, categoryID, choice.OptionID)
		}
	}
	return nil
}

// IsCustomPreset reports whether f carries the fields a user preset needs.
func IsCustomPreset(f Format) bool {
	return strings.TrimSpace(f.ID) != "" &&
		strings.TrimSpace(f.Label) != "" &&
		strings.TrimSpace(f.Ext) != "" &&
		f.Settings != nil
}
