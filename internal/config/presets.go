package config

import (
	"fmt"
	"strings"

	"img2gif/internal/presets"
)

// Format converts the preset into a format descriptor.
func (p Preset) Format() (presets.Format, error) {
	settings := make(map[string]presets.Choice, len(p.Settings))
	for category, raw := range p.Settings {
		choice, err := parseChoice(raw)
		if err != nil {
			return presets.Format{}, fmt.Errorf("presets %q: settings.%s: %w", p.ID, category, err)
		}
		settings[category] = choice
	}
	mime := p.MIMEType
	if mime == "" && p.Ext != "" {
		mime = "image/" + p.Ext
	}
	return presets.Format{
		ID:       p.ID,
		Label:    p.Label,
		Value:    strings.ToUpper(p.Ext),
		Ext:      p.Ext,
		MIMEType: mime,
		Settings: settings,
	}, nil
}

func parseChoice(raw any) (presets.Choice, error) {
	switch v := raw.(type) {
	case string:
		return presets.Choice{OptionID: strings.TrimSpace(v)}, nil
	case map[string]any:
		var choice presets.Choice
		for key, value := range v {
			text, ok := scalarString(value)
			if !ok {
				return presets.Choice{}, fmt.Errorf("%s must be a string or number", key)
			}
			switch key {
			case "id":
				choice.OptionID = strings.TrimSpace(text)
			case "value":
				choice.Value = text
			default:
				return presets.Choice{}, fmt.Errorf("unknown key %q", key)
			}
		}
		return choice, nil
	default:
		return presets.Choice{}, fmt.Errorf("expected option id or {id, value} table, got %T", raw)
	}
}

func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int64:
		return fmt.Sprintf("%d", v), true
	case float64:
		return fmt.Sprintf("%g", v), true
	default:
		return "", false
	}
}

// Catalog returns the built-in catalog extended with the configured presets.
func (c *Config) Catalog() (presets.Catalog, error) {
	catalog := presets.DefaultCatalog()
	if len(c.Presets) == 0 {
		return catalog, nil
	}
	formats := make([]presets.Format, 0, len(c.Presets))
	for _, p := range c.Presets {
		f, err := p.Format()
		if err != nil {
			return presets.Catalog{}, err
		}
		formats = append(formats, f)
	}
	return catalog.WithFormats(formats...)
}
