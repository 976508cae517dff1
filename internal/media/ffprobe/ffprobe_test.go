package ffprobe

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const gifJSON = `{
  "streams": [
    {"index": 0, "codec_name": "gif", "codec_type": "video", "pix_fmt": "bgra",
     "width": 320, "height": 240, "nb_frames": "3", "r_frame_rate": "1/1"}
  ],
  "format": {"filename": "test.gif", "nb_streams": 1, "duration": "3.000000",
             "size": "4096", "format_name": "gif"}
}`

func TestParseGIFResult(t *testing.T) {
	result, err := Parse([]byte(gifJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if w, h := result.Dimensions(); w != 320 || h != 240 {
		t.Fatalf("dimensions = %dx%d", w, h)
	}
	if result.FrameCount() != 3 {
		t.Fatalf("frame count = %d", result.FrameCount())
	}
	if result.FrameRate() != 1 {
		t.Fatalf("frame rate = %v", result.FrameRate())
	}
	if result.DurationSeconds() != 3 {
		t.Fatalf("duration = %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 4096 {
		t.Fatalf("size = %d", result.SizeBytes())
	}
	if result.AudioStreamCount() != 0 {
		t.Fatalf("expected no audio streams")
	}
	if len(result.RawJSON()) == 0 {
		t.Fatal("expected raw json to be retained")
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", NBFrames: "N/A", RFrameRate: "0/0"}},
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.FrameCount() != 0 {
		t.Fatalf("expected frame count 0, got %d", result.FrameCount())
	}
	if result.FrameRate() != 0 {
		t.Fatalf("expected frame rate 0, got %v", result.FrameRate())
	}
}

func TestInspectUsesBinary(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\ncat <<'JSON'\n" + gifJSON + "\nJSON\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	result, err := Inspect(context.Background(), stub, "test.gif")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.Format.FormatName != "gif" {
		t.Fatalf("unexpected format %q", result.Format.FormatName)
	}
	if _, err := Inspect(context.Background(), stub, " "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
