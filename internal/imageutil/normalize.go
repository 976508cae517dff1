package imageutil

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	// Decoders beyond what imaging registers.
	_ "golang.org/x/image/webp"

	"img2gif/internal/naming"
)

// Normalize decodes a, applies its EXIF orientation and re-encodes it as PNG
// named <base>.png. The input asset is left untouched.
func Normalize(a Asset) (Asset, error) {
	if a.MIME == "" {
		a.MIME = DetectMIME(a.Data)
	}
	if !a.IsImage() {
		return Asset{}, &DecodeError{Filename: a.Name, Err: fmt.Errorf("unsupported content type %s", a.MIME)}
	}
	img, err := imaging.Decode(bytes.NewReader(a.Data), imaging.AutoOrientation(true))
	if err != nil {
		return Asset{}, &DecodeError{Filename: a.Name, Err: err}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return Asset{}, fmt.Errorf("encode %q as png: %w", a.Name, err)
	}
	return Asset{
		Name: naming.OutputFilename(a.Name, "png"),
		MIME: MIMEPNG,
		Data: buf.Bytes(),
	}, nil
}

// NormalizeAll normalizes every asset concurrently. Results keep input
// order; the first failure cancels the batch and is returned.
func NormalizeAll(ctx context.Context, assets []Asset) ([]Asset, error) {
	out := make([]Asset, len(assets))
	g, ctx := errgroup.WithContext(ctx)
	for i, a := range assets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			normalized, err := Normalize(a)
			if err != nil {
				return err
			}
			out[i] = normalized
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
