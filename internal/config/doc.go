// Package config loads, normalizes, and validates img2gif configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks (IMG2GIF_FFMPEG,
// IMG2GIF_WORK_DIR). User presets declared as [[presets]] tables are merged
// into the built-in format catalog by Catalog.
package config
