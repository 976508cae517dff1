package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"img2gif/internal/config"
	"img2gif/internal/media/ffprobe"
	"img2gif/internal/preflight"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Probe a generated GIF (or any media file) with ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			result, err := ffprobe.Inspect(cmd.Context(), preflight.ResolveFFprobe(cfg), path)
			if err != nil {
				return err
			}
			if jsonOutput {
				_, err := cmd.OutOrStdout().Write(result.RawJSON())
				return err
			}

			stream, ok := result.VideoStream()
			if !ok {
				return fmt.Errorf("%s has no video stream", path)
			}
			width, height := result.Dimensions()
			rows := [][]string{
				{"Container", result.Format.FormatName},
				{"Codec", stream.CodecName},
				{"Pixel format", stream.PixFmt},
				{"Dimensions", fmt.Sprintf("%dx%d", width, height)},
				{"Frames", strconv.Itoa(result.FrameCount())},
				{"Audio streams", strconv.Itoa(result.AudioStreamCount())},
				{"Frame rate", formatProbeFloat(result.FrameRate(), "fps")},
				{"Duration", formatProbeFloat(result.DurationSeconds(), "s")},
				{"Size", humanBytes(result.SizeBytes())},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Property", "Value"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw ffprobe JSON")
	return cmd
}

func formatProbeFloat(value float64, unit string) string {
	if value == 0 || math.IsNaN(value) {
		return "unknown"
	}
	return strconv.FormatFloat(value, 'f', 3, 64) + " " + unit
}
