package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type formatView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Ext      string `json:"ext"`
	MIMEType string `json:"mimetype"`
	Default  bool   `json:"default"`
	Custom   bool   `json:"custom"`
}

func newFormatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List output formats, including configured presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := ctx.catalog()
			if err != nil {
				return err
			}
			views := make([]formatView, 0, len(catalog.Formats))
			for _, f := range catalog.Formats {
				views = append(views, formatView{
					ID:       f.ID,
					Label:    f.Label,
					Ext:      f.Ext,
					MIMEType: f.MIMEType,
					Default:  f.IsDefault,
					Custom:   f.IsCustomPreset,
				})
			}
			if jsonOutput {
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{v.ID, v.Label, "." + v.Ext, v.MIMEType, yesNo(v.Default), yesNo(v.Custom)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Label", "Ext", "MIME type", "Default", "Preset"},
				rows,
				nil,
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print formats as JSON")
	return cmd
}
