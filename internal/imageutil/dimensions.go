package imageutil

import (
	"bytes"
	"context"
	"image"

	// Header decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"img2gif/internal/geometry"
)

// Dimensions decodes only the image header of a.
func Dimensions(a Asset) (geometry.Canvas, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(a.Data))
	if err != nil {
		return geometry.Canvas{}, &DecodeError{Filename: a.Name, Err: err}
	}
	return geometry.Canvas{Width: cfg.Width, Height: cfg.Height}, nil
}

// MaxDimensions returns the component-wise maximum width and height of the
// batch. An empty batch yields a zero canvas.
func MaxDimensions(ctx context.Context, assets []Asset) (geometry.Canvas, error) {
	sizes := make([]geometry.Canvas, len(assets))
	g, ctx := errgroup.WithContext(ctx)
	for i, a := range assets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			size, err := Dimensions(a)
			if err != nil {
				return err
			}
			sizes[i] = size
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return geometry.Canvas{}, err
	}
	var bounds geometry.Canvas
	for _, size := range sizes {
		if size.Width > bounds.Width {
			bounds.Width = size.Width
		}
		if size.Height > bounds.Height {
			bounds.Height = size.Height
		}
	}
	return bounds, nil
}
