package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"img2gif/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var statuses []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseStatuses(statuses)
			if err != nil {
				return err
			}
			return ctx.withHistory(func(store *history.Store) error {
				entries, err := store.List(cmd.Context(), history.ListOptions{Limit: limit, Statuses: filter})
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No conversions recorded")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Started", "Status", "Format", "Output", "Frames", "Size", "Elapsed"},
					historyRows(entries),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Only show entries with these statuses (succeeded, failed, skipped)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print entries as JSON")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryCountCommand(ctx))
	cmd.AddCommand(newHistoryPruneCommand(ctx))
	cmd.AddCommand(newHistoryClearCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one conversion (full id or unique prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				entry, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if entry == nil {
					return fmt.Errorf("conversion %q not found", args[0])
				}
				printHistoryEntry(cmd.OutOrStdout(), entry, shouldColorize(cmd.OutOrStdout()))
				return nil
			})
		},
	}
}

func newHistoryCountCommand(ctx *commandContext) *cobra.Command {
	var byStatus bool

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the number of successful conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				if byStatus {
					return printStatusCounts(cmd.Context(), cmd.OutOrStdout(), store)
				}
				count, err := store.Count(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), count)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&byStatus, "by-status", false, "Break the count down by status")
	return cmd
}

func printStatusCounts(ctx context.Context, out io.Writer, store *history.Store) error {
	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	statuses := []history.Status{history.StatusSucceeded, history.StatusFailed, history.StatusSkipped}
	rows := make([][]string, 0, len(statuses))
	total := 0
	for _, status := range statuses {
		rows = append(rows, []string{string(status), strconv.Itoa(stats[status])})
		total += stats[status]
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Status", "Count"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
		"total", strconv.Itoa(total),
	))
	return nil
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove conversions older than a duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return errors.New("--older-than must be positive")
			}
			return ctx.withHistory(func(store *history.Store) error {
				removed, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d conversion(s)\n", removed)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Age threshold")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every recorded conversion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear history without --yes")
			}
			return ctx.withHistory(func(store *history.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d conversion(s)\n", removed)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm clearing the history")
	return cmd
}

func parseStatuses(values []string) ([]history.Status, error) {
	var out []history.Status
	for _, value := range values {
		status := history.Status(strings.ToLower(strings.TrimSpace(value)))
		switch status {
		case history.StatusSucceeded, history.StatusFailed, history.StatusSkipped:
			out = append(out, status)
		case "":
		default:
			return nil, fmt.Errorf("unknown status %q", value)
		}
	}
	return out, nil
}

func historyRows(entries []*history.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		id := e.ID
		if len(id) > 8 {
			id = id[:8]
		}
		size := ""
		if e.OutputBytes > 0 {
			size = humanBytes(e.OutputBytes)
		}
		rows = append(rows, []string{
			id,
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			string(e.Status),
			e.Format,
			e.OutputName,
			strconv.Itoa(e.Frames),
			size,
			e.Elapsed().Round(time.Millisecond).String(),
		})
	}
	return rows
}

func printHistoryEntry(out io.Writer, e *history.Entry, colorize bool) {
	kind := statusOK
	switch e.Status {
	case history.StatusFailed:
		kind = statusError
	case history.StatusSkipped:
		kind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("ID", statusInfo, e.ID, colorize))
	fmt.Fprintln(out, renderStatusLine("Status", kind, string(e.Status), colorize))
	fmt.Fprintln(out, renderStatusLine("Format", statusInfo, e.Format, colorize))
	fmt.Fprintln(out, renderStatusLine("Inputs", statusInfo, strings.Join(e.Inputs, ", "), colorize))
	if e.OutputPath != "" {
		fmt.Fprintln(out, renderStatusLine("Output", statusInfo, e.OutputPath, colorize))
	}
	if dims := e.Dimensions(); dims != "" {
		fmt.Fprintln(out, renderStatusLine("Frames", statusInfo, fmt.Sprintf("%d at %s", e.Frames, dims), colorize))
	}
	if e.Settings != "" {
		fmt.Fprintln(out, renderStatusLine("Settings", statusInfo, e.Settings, colorize))
	}
	if e.ErrorMessage != "" {
		fmt.Fprintln(out, renderStatusLine("Error", statusError, e.ErrorMessage, colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Started", statusInfo, e.StartedAt.Local().Format(time.RFC3339), colorize))
	fmt.Fprintln(out, renderStatusLine("Elapsed", statusInfo, e.Elapsed().Round(time.Millisecond).String(), colorize))
}
