package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"img2gif/internal/staging"
)

func newWorkCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "List engine session directories in the work directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dirs, err := staging.ListDirectories(cfg.Paths.WorkDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(dirs) == 0 {
				fmt.Fprintf(out, "No session directories in %s\n", cfg.Paths.WorkDir)
				return nil
			}
			rows := make([][]string, 0, len(dirs))
			var total int64
			for _, d := range dirs {
				total += d.Size
				rows = append(rows, []string{d.Name, humanize.Time(d.ModTime), strconv.Itoa(d.Files), humanBytes(d.Size)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Session", "Modified", "Files", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
				fmt.Sprintf("%d session(s)", len(dirs)), "", "", humanBytes(total),
			))
			return nil
		},
	}
	cmd.AddCommand(newWorkCleanCommand(ctx))
	return cmd
}

func newWorkCleanCommand(ctx *commandContext) *cobra.Command {
	var olderThan = staging.DefaultMaxAge

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove abandoned session directories",
		Long: `Remove session directories left behind by interrupted conversions.

Only directories older than --older-than are removed; 0 removes every
session, including those of conversions still running.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan < 0 {
				return errors.New("--older-than must not be negative")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			result := staging.CleanStale(cmd.Context(), cfg.Paths.WorkDir, olderThan, logger)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, path := range result.Removed {
				fmt.Fprintln(out, renderStatusLine("Removed", statusOK, path, colorize))
			}
			for _, failure := range result.Errors {
				fmt.Fprintln(out, renderStatusLine("Failed", statusError, fmt.Sprintf("%s: %v", failure.Path, failure.Error), colorize))
			}
			fmt.Fprintf(out, "Removed %d session(s)\n", len(result.Removed))
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d session(s) could not be removed", len(result.Errors))
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", staging.DefaultMaxAge, "Age threshold")
	return cmd
}
