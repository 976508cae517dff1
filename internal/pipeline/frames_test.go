package pipeline

import (
	"bytes"
	"image"
	"image/jpeg"
	"reflect"
	"testing"

	"img2gif/internal/presets"
)

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 6)), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestDurationFallback(t *testing.T) {
	tests := []struct {
		value string
		set   bool
		want  float64
	}{
		{value: "3", set: true, want: 3},
		{value: "0.5", set: true, want: 0.5},
		{value: "0", set: true, want: 1},
		{value: "", set: true, want: 1},
		{value: "abc", set: true, want: 1},
		{value: "-2", set: true, want: 1},
		{value: "NaN", set: true, want: 1},
		{value: "Inf", set: true, want: 1},
		{set: false, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			sel := presets.NewSelection()
			if tt.set {
				sel.Set(presets.CategoryDuration, presets.Option{Value: tt.value})
			}
			if got := Duration(sel); got != tt.want {
				t.Fatalf("Duration(%q) = %v, want %v", tt.value, got, tt.want)
			}
			if got := FrameRate(4, sel); got != 4/tt.want {
				t.Fatalf("FrameRate = %v, want %v", got, 4/tt.want)
			}
		})
	}
}

func TestIntermediateArgsFormatsRate(t *testing.T) {
	got := IntermediateArgs("a_%d.png", 2.0/3.0, "format=rgba", "png", "temp.mp4")
	want := []string{"-framerate", "0.6666666666666666", "-f", "image2", "-i", "a_%d.png", "-vf", "format=rgba", "-c:v", "png", "-an", "temp.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("IntermediateArgs() = %q, want %q", got, want)
	}
}

func TestStateString(t *testing.T) {
	if StateMp4Built.String() != "mp4_built" || State(42).String() != "unknown" {
		t.Fatal("unexpected state names")
	}
}
