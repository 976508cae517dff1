// Package imageutil normalizes still images into PNG frames and measures
// them.
//
// Any raster the standard library, golang.org/x/image or imaging can decode
// (PNG, JPEG, GIF, BMP, TIFF, WebP) is re-encoded as PNG so the image2
// demuxer reads a single format and alpha survives. Batch helpers run each
// image concurrently and fail as a whole when any member fails.
package imageutil
