package naming

import (
	"fmt"
	"strings"
	"testing"
)

func TestIndexedFilenamesKeepsOwnBase(t *testing.T) {
	got := IndexedFilenames([]string{"test.png", "test1.jpeg", "asd.webp"})
	want := []string{"test_1.png", "test1_2.jpeg", "asd_3.webp"}
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSequenceFilenamesShareFirstBase(t *testing.T) {
	got := SequenceFilenames([]string{"test.png", "test1.png", "asd.png"})
	want := []string{"test_1.png", "test_2.png", "test_3.png"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d = %q, want %q", i, got[i], want[i])
		}
	}
	if empty := SequenceFilenames(nil); len(empty) != 0 {
		t.Fatalf("expected no names for empty batch, got %v", empty)
	}
}

func TestIndexedFilenamesUniqueAndOrdered(t *testing.T) {
	for _, n := range []int{1, 2, 9, 10, 37} {
		names := make([]string, n)
		for i := range names {
			names[i] = "frame.png"
		}
		for _, indexed := range [][]string{IndexedFilenames(names), SequenceFilenames(names)} {
			seen := make(map[string]struct{}, n)
			for i, name := range indexed {
				if _, dup := seen[name]; dup {
					t.Fatalf("duplicate name %q in batch of %d", name, n)
				}
				seen[name] = struct{}{}
				suffix := fmt.Sprintf("_%d.png", i+1)
				if !strings.HasSuffix(name, suffix) {
					t.Fatalf("name %q does not carry index suffix %q", name, suffix)
				}
			}
		}
	}
}

func TestSequencePattern(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"foo_3.png", "foo_%d.png"},
		{"test_1.png", "test_%d.png"},
		{"v2_1.png", "v2_%d.png"},
		{"a_1_12.png", "a_1_%d.png"},
		{"shot 2024_7.jpeg", "shot 2024_%d.jpeg"},
		{"noindex.png", "noindex.png"},
		{"50%_1.png", "50%%_%d.png"},
		{"a%d_2.png", "a%%d_%d.png"},
		{"x_1.p%g", "x_%d.p%%g"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SequencePattern(tt.input); got != tt.expected {
				t.Errorf("SequencePattern(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		input, ext, expected string
	}{
		{"temp.mp4", "gif", "temp.gif"},
		{"test.png", ".gif", "test.gif"},
		{"/tmp/dir/photo.final.jpg", "gif", "photo.final.gif"},
		{"noext", "gif", "noext.gif"},
		{"clip.mp4", "", "clip"},
	}
	for _, tt := range tests {
		if got := OutputFilename(tt.input, tt.ext); got != tt.expected {
			t.Errorf("OutputFilename(%q, %q) = %q, want %q", tt.input, tt.ext, got, tt.expected)
		}
	}
}

func TestSplitNameNormalizesUnicode(t *testing.T) {
	decomposed := "cafe\u0301.png"
	base, ext := SplitName(decomposed)
	if base != "caf\u00e9" {
		t.Fatalf("expected NFC base, got %q", base)
	}
	if ext != "png" {
		t.Fatalf("expected png extension, got %q", ext)
	}
}
