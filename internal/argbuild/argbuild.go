package argbuild

import (
	"strings"

	"img2gif/internal/naming"
	"img2gif/internal/presets"
)

// TemplateCategory is the category whose value absorbs the other categories.
const TemplateCategory = presets.CategoryQuality

// Compile returns the transcoder arguments for converting input into format
// using sel. An empty output defaults to <inputBase>.<format.Ext>. A nil
// format, nil selection or blank input yields an empty list.
func Compile(format *presets.Format, sel *presets.Selection, input, output string) []string {
	input = strings.TrimSpace(input)
	if format == nil || sel == nil || input == "" {
		return []string{}
	}
	output = strings.TrimSpace(output)
	if output == "" {
		output = naming.OutputFilename(input, format.Ext)
	}
	tokens := SettingsTokens(sel)
	args := make([]string, 0, len(tokens)+3)
	args = append(args, "-i", input)
	args = append(args, tokens...)
	return append(args, output)
}

// SettingsTokens splits SettingsString on whitespace.
func SettingsTokens(sel *presets.Selection) []string {
	return strings.Fields(SettingsString(sel))
}

// SettingsString renders the selection as one argument string.
func SettingsString(sel *presets.Selection) string {
	if sel.Len() == 0 {
		return ""
	}
	if template, ok := sel.Get(TemplateCategory); ok {
		return strings.TrimSpace(ExpandTemplate(template.Value, sel, TemplateCategory))
	}
	parts := make([]string, 0, sel.Len())
	for _, key := range sel.Keys() {
		if value := strings.TrimSpace(sel.Value(key)); value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, " ")
}

// ExpandTemplate replaces every {category} placeholder in template with that
// category's selected value. The skip category (normally the template's own)
// is ignored. Scale values without a ':' separator gain ":-1"; a blank scale
// becomes "iw:-1". Placeholders naming unselected categories are left as is.
func ExpandTemplate(template string, sel *presets.Selection, skip string) string {
	for _, key := range sel.Keys() {
		if key == skip {
			continue
		}
		value := sel.Value(key)
		if key == presets.CategoryScale {
			value = presets.NormalizeScale(value)
		}
		template = strings.ReplaceAll(template, "{"+key+"}", value)
	}
	return template
}

// Placeholders lists the {category} names referenced by template in order of
// first appearance.
func Placeholders(template string) []string {
	var names []string
	seen := make(map[string]bool)
	for {
		start := strings.IndexByte(template, '{')
		if start < 0 {
			return names
		}
		end := strings.IndexByte(template[start+1:], '}')
		if end < 0 {
			return names
		}
		name := template[start+1 : start+1+end]
		if name != "" && !strings.ContainsAny(name, " {") && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		template = template[start+1+end+1:]
	}
}
