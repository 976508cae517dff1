package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"img2gif/internal/argbuild"
	"img2gif/internal/engine"
	"img2gif/internal/geometry"
	"img2gif/internal/imageutil"
	"img2gif/internal/logging"
	"img2gif/internal/naming"
	"img2gif/internal/presets"
)

const (
	defaultIntermediateName  = "temp.mp4"
	defaultIntermediateCodec = "png"
)

// Options configures a Converter.
type Options struct {
	IntermediateName  string
	IntermediateCodec string
	PadColor          string
	// MaxInputBytes rejects larger inputs in SetFiles. Zero disables the check.
	MaxInputBytes int64
	Logger        *slog.Logger
	Sink          Sink
	Progress      ProgressSink
}

// Result is the outcome of a successful conversion.
type Result struct {
	Name         string
	Data         []byte
	Frames       int
	Canvas       geometry.Canvas
	FrameRate    float64
	Duration     float64
	Stage1Args   []string
	Stage2Args   []string
	Intermediate string
}

type frame struct {
	name  string
	asset imageutil.Asset
}

// Converter drives the two-stage conversion for one batch at a time.
type Converter struct {
	eng      engine.Engine
	opts     Options
	logger   *slog.Logger
	sink     Sink
	progress ProgressSink

	mu      sync.Mutex
	state   State
	frames  []frame
	written bool
}

// New constructs a converter on top of eng.
func New(eng engine.Engine, opts Options) *Converter {
	if strings.TrimSpace(opts.IntermediateName) == "" {
		opts.IntermediateName = defaultIntermediateName
	}
	if strings.TrimSpace(opts.IntermediateCodec) == "" {
		opts.IntermediateCodec = defaultIntermediateCodec
	}
	if strings.TrimSpace(opts.PadColor) == "" {
		opts.PadColor = geometry.DefaultPadColor
	}
	c := &Converter{
		eng:      eng,
		opts:     opts,
		logger:   logging.NewComponentLogger(opts.Logger, "pipeline"),
		sink:     opts.Sink,
		progress: opts.Progress,
	}
	if c.sink == nil {
		c.sink = nopSink{}
	}
	if c.progress == nil {
		c.progress = nopProgress{}
	}
	return c
}

// State returns the current lifecycle state.
func (c *Converter) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Files returns the virtual names of the loaded batch in sequence order.
func (c *Converter) Files() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.frames))
	for i, f := range c.frames {
		names[i] = f.name
	}
	return names
}

// Init loads the engine and writes any batch set before it was ready.
func (c *Converter) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.eng.Load(ctx); err != nil {
		return fmt.Errorf("load engine: %w", err)
	}
	return c.writeFrames(ctx)
}

// SetFiles replaces the loaded batch. The previous batch is removed from the
// engine store first; the new images are normalized to PNG, indexed against
// the first image's name and written to the store when the engine is loaded.
// An empty batch only tears down and leaves the converter Empty.
func (c *Converter) SetFiles(ctx context.Context, assets []imageutil.Asset) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.opts.MaxInputBytes > 0 {
		for _, a := range assets {
			if a.Size() > c.opts.MaxInputBytes {
				return fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrInputTooLarge, a.Name, a.Size(), c.opts.MaxInputBytes)
			}
		}
	}

	c.teardown(ctx)
	if len(assets) == 0 {
		return nil
	}

	normalized, err := imageutil.NormalizeAll(ctx, assets)
	if err != nil {
		return err
	}
	names := make([]string, len(normalized))
	for i, a := range normalized {
		names[i] = a.Name
	}
	indexed := naming.SequenceFilenames(names)
	c.frames = make([]frame, len(normalized))
	for i, a := range normalized {
		c.frames[i] = frame{name: indexed[i], asset: a}
	}
	c.state = StateFilesLoaded
	c.logger.Info("files loaded",
		logging.Int("count", len(c.frames)),
		logging.String("first", indexed[0]),
	)
	return c.writeFrames(ctx)
}

// Convert runs both stages and returns the encoded output. It returns a nil
// result and nil error when the engine is not loaded or no files are set.
func (c *Converter) Convert(ctx context.Context, format *presets.Format, sel *presets.Selection) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready(ctx, "convert") {
		return nil, nil
	}
	if format == nil || strings.TrimSpace(format.Ext) == "" {
		return nil, fmt.Errorf("%w: output format with an extension is required", ErrInvalidSetting)
	}
	if sel == nil {
		sel = presets.NewSelection()
	}
	if err := validateSelection(sel); err != nil {
		return nil, err
	}
	if err := c.writeFrames(ctx); err != nil {
		return nil, err
	}

	c.progress.SetProgress(0)
	result, err := c.buildIntermediate(ctx, sel)
	if err != nil {
		return nil, err
	}
	c.progress.SetProgress(0.5)

	intermediate := result.Intermediate
	defer c.removeQuietly(ctx, intermediate)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output := naming.OutputFilename(c.frames[0].asset.Name, format.Ext)
	if output == intermediate {
		return nil, fmt.Errorf("%w: output %q collides with the intermediate video", ErrInvalidSetting, output)
	}
	args := argbuild.Compile(format, sel, intermediate, output)
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: could not compile settings", ErrInvalidSetting)
	}
	result.Stage2Args = args
	result.Name = output

	stageCtx := logging.WithStage(ctx, "gif")
	c.record(stageCtx, "Generate GIF", args)
	if err := c.eng.Exec(stageCtx, args); err != nil {
		c.abortOutput(ctx, output)
		return nil, err
	}
	data, err := c.eng.ReadFile(stageCtx, output)
	if err != nil {
		c.abortOutput(ctx, output)
		return nil, err
	}
	c.removeQuietly(ctx, output)
	result.Data = data
	c.state = StateGifBuilt
	c.progress.SetProgress(1)
	c.logger.Info("conversion complete",
		logging.String("output", output),
		logging.Int("bytes", len(data)),
		logging.Int("frames", result.Frames),
	)
	return result, nil
}

// BuildIntermediate runs stage 1 only and returns the intermediate video's
// name, or "" when the converter is not ready.
func (c *Converter) BuildIntermediate(ctx context.Context, sel *presets.Selection) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready(ctx, "build intermediate") {
		return "", nil
	}
	if sel == nil {
		sel = presets.NewSelection()
	}
	if err := c.writeFrames(ctx); err != nil {
		return "", err
	}
	result, err := c.buildIntermediate(ctx, sel)
	if err != nil {
		return "", err
	}
	return result.Intermediate, nil
}

func (c *Converter) buildIntermediate(ctx context.Context, sel *presets.Selection) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	assets := make([]imageutil.Asset, len(c.frames))
	for i, f := range c.frames {
		assets[i] = f.asset
	}
	canvas, err := imageutil.MaxDimensions(ctx, assets)
	if err != nil {
		return nil, err
	}
	if canvas.Empty() {
		return nil, fmt.Errorf("%w: frames have no area", ErrInvalidSetting)
	}

	duration := Duration(sel)
	fps := FrameRate(len(c.frames), sel)
	pattern := naming.SequencePattern(c.frames[0].name)
	args := IntermediateArgs(pattern, fps, canvas.Filter(c.opts.PadColor), c.opts.IntermediateCodec, c.opts.IntermediateName)

	stageCtx := logging.WithStage(ctx, "frames")
	c.record(stageCtx, "Generate temporary mp4", args)
	if err := c.eng.Exec(stageCtx, args); err != nil {
		return nil, err
	}
	c.state = StateMp4Built
	return &Result{
		Frames:       len(c.frames),
		Canvas:       canvas,
		FrameRate:    fps,
		Duration:     duration,
		Stage1Args:   args,
		Intermediate: c.opts.IntermediateName,
	}, nil
}

func (c *Converter) ready(ctx context.Context, op string) bool {
	logger := logging.WithContext(ctx, c.logger)
	if !c.eng.Loaded() {
		logging.WarnWithContext(logger, op+": engine is not loaded", "engine_not_loaded",
			logging.String(logging.FieldErrorHint, "call Init before converting"),
		)
		return false
	}
	if len(c.frames) == 0 {
		logging.WarnWithContext(logger, op+": no files to convert", "no_files",
			logging.String(logging.FieldErrorHint, "call SetFiles before converting"),
		)
		return false
	}
	return true
}

func (c *Converter) record(ctx context.Context, title string, args []string) {
	command := strings.Join(args, " ")
	c.sink.Append(title)
	c.sink.Append("Command: " + command)
	logging.WithContext(ctx, c.logger).Info(strings.ToLower(title), logging.String("command", command))
}

func (c *Converter) writeFrames(ctx context.Context) error {
	if c.written || len(c.frames) == 0 || !c.eng.Loaded() {
		return nil
	}
	for i, f := range c.frames {
		if err := c.eng.WriteFile(ctx, f.name, f.asset.Data); err != nil {
			for _, done := range c.frames[:i] {
				c.removeQuietly(ctx, done.name)
			}
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	c.written = true
	return nil
}

func (c *Converter) teardown(ctx context.Context) {
	if c.written && c.eng.Loaded() {
		var errs []error
		for _, f := range c.frames {
			if err := c.eng.DeleteFile(ctx, f.name); err != nil {
				errs = append(errs, err)
			}
		}
		if err := errors.Join(errs...); err != nil {
			logging.WarnWithContext(c.logger, "failed to remove previous files", "teardown_incomplete",
				logging.Error(err),
			)
		}
	}
	c.frames = nil
	c.written = false
	c.state = StateEmpty
}

// abortOutput drops a partial stage 2 output. The intermediate is removed by
// the caller, so the converter falls back to its loaded frames.
func (c *Converter) abortOutput(ctx context.Context, output string) {
	c.removeQuietly(ctx, output)
	c.state = StateFilesLoaded
}

func (c *Converter) removeQuietly(ctx context.Context, name string) {
	if err := c.eng.DeleteFile(context.WithoutCancel(ctx), name); err != nil {
		c.logger.Debug("cleanup skipped", logging.String("file", name), logging.Error(err))
	}
}

func validateSelection(sel *presets.Selection) error {
	if !sel.Has(presets.CategoryScale) {
		return nil
	}
	scale := presets.NormalizeScale(sel.Value(presets.CategoryScale))
	if err := presets.ValidateScale(scale); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	return nil
}
