package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"img2gif/internal/argbuild"
	"img2gif/internal/naming"
	"img2gif/internal/presets"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	var sets []string
	var raw string

	cmd := &cobra.Command{
		Use:   "settings [FORMAT]",
		Short: "Show setting categories, options and the compiled arguments for a format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			catalog, err := cfg.Catalog()
			if err != nil {
				return err
			}
			formatID := cfg.Conversion.DefaultFormat
			if len(args) == 1 {
				formatID = args[0]
			}
			format, err := catalog.Format(formatID)
			if err != nil {
				return err
			}
			sel, err := buildSelection(catalog, format, convertOptions{sets: sets, raw: raw})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			title := cases.Title(language.English)
			for _, cat := range catalog.Categories {
				for _, line := range renderSectionHeader(fmt.Sprintf("%s (%s)", title.String(cat.Label), cat.ID), colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderTable(
					[]string{"", "Option", "Label", "Value"},
					optionRows(cat, sel),
					nil,
				))
			}

			input := cfg.Engine.IntermediateName
			compiled := argbuild.Compile(&format, sel, input, naming.OutputFilename("frames", format.Ext))
			fmt.Fprintln(out, renderStatusLine("Format", statusInfo, fmt.Sprintf("%s (%s)", format.ID, format.Label), colorize))
			fmt.Fprintln(out, renderStatusLine("Arguments", statusInfo, strings.Join(compiled, " "), colorize))
			if missing := unresolvedPlaceholders(sel); len(missing) > 0 {
				fmt.Fprintln(out, renderStatusLine("Placeholders", statusWarn, "unselected: "+strings.Join(missing, ", "), colorize))
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Preview a setting as CATEGORY=OPTION or CATEGORY=VALUE (repeatable)")
	cmd.Flags().StringVar(&raw, "raw", "", "Preview literal arguments instead of the format settings")
	return cmd
}

func optionRows(cat presets.Category, sel *presets.Selection) [][]string {
	chosen, hasChoice := sel.Get(cat.ID)
	rows := make([][]string, 0, len(cat.Options))
	for _, opt := range cat.Options {
		marker := ""
		if hasChoice && chosen.ID == opt.ID {
			marker = "*"
		}
		value := opt.Value
		switch {
		case opt.IsInput && marker != "":
			value = chosen.Value
		case opt.IsInput:
			value = "<" + opt.InputType + ">"
		case marker != "" && chosen.Value != opt.Value:
			value = chosen.Value
		}
		label := opt.Label
		if opt.IsDefault {
			label += " (default)"
		}
		rows = append(rows, []string{marker, opt.ID, label, value})
	}
	return rows
}

// unresolvedPlaceholders lists template placeholders that name categories
// missing from sel.
func unresolvedPlaceholders(sel *presets.Selection) []string {
	template, ok := sel.Get(argbuild.TemplateCategory)
	if !ok {
		return nil
	}
	var missing []string
	for _, name := range argbuild.Placeholders(template.Value) {
		if !sel.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
