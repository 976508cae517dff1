package imageutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MIMEPNG is the MIME type of normalized assets.
const MIMEPNG = "image/png"

// Asset is an immutable named blob.
type Asset struct {
	Name string
	MIME string
	Data []byte
}

// NewAsset wraps data under name and sniffs its MIME type.
func NewAsset(name string, data []byte) Asset {
	return Asset{Name: name, MIME: DetectMIME(data), Data: data}
}

// LoadAsset reads path from disk. The asset name is the file's base name.
func LoadAsset(path string) (Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Asset{}, fmt.Errorf("read image %q: %w", path, err)
	}
	return NewAsset(filepath.Base(path), data), nil
}

// Size returns the asset length in bytes.
func (a Asset) Size() int64 {
	return int64(len(a.Data))
}

// IsImage reports whether the sniffed MIME type is an image type.
func (a Asset) IsImage() bool {
	return strings.HasPrefix(a.MIME, "image/")
}

// DetectMIME returns the MIME type of data without parameters.
func DetectMIME(data []byte) string {
	mime := mimetype.Detect(data).String()
	if idx := strings.IndexByte(mime, ';'); idx >= 0 {
		mime = mime[:idx]
	}
	return strings.TrimSpace(mime)
}

// DecodeError reports an image that could not be decoded.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decode image %q", e.Filename)
	}
	return fmt.Sprintf("decode image %q: %v", e.Filename, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
