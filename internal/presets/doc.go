// Package presets models the declarative settings graph used to build the
// GIF stage of a conversion.
//
// A Catalog holds the setting categories (quality, duration, width, loop),
// each with ordered options, plus the output formats. A Format carries the
// option references and inline overrides it selects by default; Resolve turns
// those into an ordered Selection that the argbuild package compiles into
// ffmpeg arguments.
//
// Custom formats (user presets) are plain Format values; config-declared
// presets are validated with ValidatePreset before joining a catalog.
package presets
