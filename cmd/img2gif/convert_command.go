package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"img2gif/internal/argbuild"
	"img2gif/internal/config"
	"img2gif/internal/engine/ffmpeg"
	"img2gif/internal/fileutil"
	"img2gif/internal/history"
	"img2gif/internal/imageutil"
	"img2gif/internal/logging"
	"img2gif/internal/notifications"
	"img2gif/internal/pipeline"
	"img2gif/internal/preflight"
	"img2gif/internal/presets"
	"img2gif/internal/staging"
)

type convertOptions struct {
	format     string
	output     string
	sets       []string
	raw        string
	transcript bool
	noHistory  bool
	jsonOutput bool
}

type convertSummary struct {
	ID          string   `json:"id"`
	Output      string   `json:"output"`
	Format      string   `json:"format"`
	Inputs      []string `json:"inputs"`
	Frames      int      `json:"frames"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	FrameRate   float64  `json:"frame_rate"`
	Duration    float64  `json:"duration"`
	Bytes       int      `json:"bytes"`
	Settings    string   `json:"settings"`
	Conversions int      `json:"conversions,omitempty"`
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert IMAGE [IMAGE...]",
		Short: "Convert images into an animated GIF",
		Long: `Convert one or more still images into an animated GIF.

Frames appear in argument order and are padded onto the largest image's
canvas. Settings start from the format's defaults; --set replaces one
category (for example --set scale=gif-scale-480 or --set duration=2.5) and
--raw replaces the whole settings graph with literal ffmpeg arguments.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format id (default from conversion.default_format)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file or directory (default: ./<first image>.<ext>)")
	cmd.Flags().StringArrayVarP(&opts.sets, "set", "s", nil, "Choose a setting as CATEGORY=OPTION or CATEGORY=VALUE (repeatable)")
	cmd.Flags().StringVar(&opts.raw, "raw", "", "Literal stage 2 arguments replacing the format settings")
	cmd.Flags().BoolVar(&opts.transcript, "transcript", false, "Print the ffmpeg command transcript to stderr")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record this conversion in the history database")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the result as JSON")
	return cmd
}

func runConvert(cmd *cobra.Command, cc *commandContext, opts convertOptions, paths []string) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cc.ensureLogger()
	if err != nil {
		return err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	formatID := strings.TrimSpace(opts.format)
	if formatID == "" {
		formatID = cfg.Conversion.DefaultFormat
	}
	format, err := catalog.Format(formatID)
	if err != nil {
		return err
	}
	sel, err := buildSelection(catalog, format, opts)
	if err != nil {
		return err
	}

	assets := make([]imageutil.Asset, 0, len(paths))
	for _, path := range paths {
		asset, err := imageutil.LoadAsset(path)
		if err != nil {
			return err
		}
		assets = append(assets, asset)
	}

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	if err := preflight.FirstFailure(preflight.RunAll(runCtx, cfg)); err != nil {
		return err
	}
	staging.CleanStale(runCtx, cfg.Paths.WorkDir, staging.DefaultMaxAge, logger)

	correlationID := uuid.NewString()
	runCtx = logging.WithCorrelationID(runCtx, correlationID)

	eng := ffmpeg.New(ffmpeg.Options{
		Binary:      cfg.Engine.FFmpegBinary,
		WorkRoot:    cfg.Paths.WorkDir,
		LockTimeout: cfg.LockTimeout(),
		Logger:      logger,
	})
	defer func() {
		if err := eng.Close(); err != nil {
			logger.Warn("failed to remove engine session directory", logging.Error(err))
		}
	}()
	runCtx = logging.WithSession(runCtx, eng.SessionID())

	var tee io.Writer
	if opts.transcript {
		tee = cmd.ErrOrStderr()
	}
	transcript := logging.NewTranscript(tee)

	entry := &history.Entry{
		CorrelationID: correlationID,
		Format:        format.ID,
		Inputs:        paths,
		Settings:      argbuild.SettingsString(sel),
		StartedAt:     time.Now().UTC(),
	}

	result, outputPath, convErr := convert(runCtx, cfg, eng, logger, transcript, assets, &format, sel, opts.output)
	entry.FinishedAt = time.Now().UTC()
	switch {
	case convErr != nil:
		entry.Status = history.StatusFailed
		entry.ErrorMessage = convErr.Error()
	case result == nil:
		entry.Status = history.StatusSkipped
		convErr = errors.New("nothing was converted; see the log for details")
	default:
		entry.Status = history.StatusSucceeded
		entry.OutputName = result.Name
		entry.OutputPath = outputPath
		entry.Frames = result.Frames
		entry.Width = result.Canvas.Width
		entry.Height = result.Canvas.Height
		entry.FrameRate = result.FrameRate
		entry.Duration = result.Duration
		entry.OutputBytes = int64(len(result.Data))
	}

	conversions := 0
	if !opts.noHistory {
		recordErr := cc.withHistory(func(store *history.Store) error {
			if err := store.Record(context.WithoutCancel(runCtx), entry); err != nil {
				return err
			}
			count, err := store.Count(context.WithoutCancel(runCtx))
			conversions = count
			return err
		})
		if recordErr != nil {
			logging.WarnWithContext(logger, "failed to record conversion history", "history_unavailable",
				logging.Error(recordErr),
				logging.String(logging.FieldErrorHint, "check paths.history_db"),
			)
		}
	}
	notifyConversion(runCtx, cfg, logger, entry, len(paths))
	if convErr != nil {
		return convErr
	}

	summary := convertSummary{
		ID:          entry.ID,
		Output:      outputPath,
		Format:      format.ID,
		Inputs:      paths,
		Frames:      result.Frames,
		Width:       result.Canvas.Width,
		Height:      result.Canvas.Height,
		FrameRate:   result.FrameRate,
		Duration:    result.Duration,
		Bytes:       len(result.Data),
		Settings:    entry.Settings,
		Conversions: conversions,
	}
	if opts.jsonOutput {
		return writeJSON(cmd, summary)
	}
	printConvertSummary(cmd.OutOrStdout(), summary, shouldColorize(cmd.OutOrStdout()))
	return nil
}

func convert(
	ctx context.Context,
	cfg *config.Config,
	eng *ffmpeg.Engine,
	logger *slog.Logger,
	transcript *logging.Transcript,
	assets []imageutil.Asset,
	format *presets.Format,
	sel *presets.Selection,
	output string,
) (*pipeline.Result, string, error) {
	conv := pipeline.New(eng, pipeline.Options{
		IntermediateName:  cfg.Engine.IntermediateName,
		IntermediateCodec: cfg.Engine.IntermediateCodec,
		PadColor:          cfg.Engine.PadColor,
		MaxInputBytes:     cfg.MaxFileSizeBytes(),
		Logger:            logger,
		Sink:              transcript,
	})
	if err := conv.Init(ctx); err != nil {
		return nil, "", err
	}
	if err := conv.SetFiles(ctx, assets); err != nil {
		return nil, "", err
	}
	result, err := conv.Convert(ctx, format, sel)
	if err != nil || result == nil {
		return nil, "", err
	}
	target, err := resolveOutputPath(output, result.Name)
	if err != nil {
		return nil, "", err
	}
	if err := fileutil.WriteFileAtomic(target, result.Data, 0o644); err != nil {
		return nil, "", fmt.Errorf("write output: %w", err)
	}
	if err := conv.SetFiles(context.WithoutCancel(ctx), nil); err != nil {
		logger.Debug("teardown failed", logging.Error(err))
	}
	return result, target, nil
}

func notifyConversion(ctx context.Context, cfg *config.Config, logger *slog.Logger, entry *history.Entry, inputs int) {
	event := notifications.EventConversionCompleted
	switch entry.Status {
	case history.StatusFailed:
		event = notifications.EventConversionFailed
	case history.StatusSkipped:
		event = notifications.EventConversionSkipped
	}
	payload := notifications.Payload{
		"output": entry.OutputName,
		"frames": entry.Frames,
		"width":  entry.Width,
		"height": entry.Height,
		"bytes":  entry.OutputBytes,
		"inputs": inputs,
		"error":  entry.ErrorMessage,
	}
	if err := notifications.NewService(cfg).Publish(context.WithoutCancel(ctx), event, payload); err != nil {
		logging.WarnWithContext(logger, "failed to send notification", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
		)
	}
}

// buildSelection resolves the format defaults and applies --raw and --set.
func buildSelection(catalog presets.Catalog, format presets.Format, opts convertOptions) (*presets.Selection, error) {
	if raw := strings.TrimSpace(opts.raw); raw != "" {
		if len(opts.sets) > 0 {
			return nil, errors.New("--raw cannot be combined with --set")
		}
		return presets.CreateSettingsFromString(raw, ""), nil
	}
	sel := catalog.Resolve(format)
	for _, assignment := range opts.sets {
		category, ref, ok := strings.Cut(assignment, "=")
		category = strings.TrimSpace(category)
		if !ok || category == "" {
			return nil, fmt.Errorf("invalid --set %q: expected CATEGORY=OPTION", assignment)
		}
		ref = strings.TrimSpace(ref)
		if ref == "" {
			sel.Delete(category)
			continue
		}
		if err := catalog.Choose(sel, category, ref); err != nil {
			return nil, err
		}
	}
	return sel, nil
}

// resolveOutputPath places name in the working directory, inside output when
// it is an existing directory, or at output itself.
func resolveOutputPath(output, name string) (string, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return filepath.Abs(name)
	}
	expanded, err := config.ExpandPath(output)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(expanded); err == nil && info.IsDir() {
		return filepath.Join(expanded, name), nil
	}
	return expanded, nil
}

func printConvertSummary(out io.Writer, s convertSummary, colorize bool) {
	fmt.Fprintln(out, renderStatusLine("Output", statusOK, s.Output, colorize))
	fmt.Fprintln(out, renderStatusLine("Frames", statusInfo, fmt.Sprintf("%d at %dx%d", s.Frames, s.Width, s.Height), colorize))
	fmt.Fprintln(out, renderStatusLine("Timing", statusInfo, fmt.Sprintf("%gs at %.3g fps", s.Duration, s.FrameRate), colorize))
	fmt.Fprintln(out, renderStatusLine("Size", statusInfo, humanBytes(int64(s.Bytes)), colorize))
	if s.Conversions > 0 {
		fmt.Fprintln(out, renderStatusLine("Conversions", statusInfo, fmt.Sprintf("%d total", s.Conversions), colorize))
	}
}
