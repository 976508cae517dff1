// Package main hosts the img2gif CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the ffmpeg engine
// and pipeline for convert, and exposes the preset catalog, conversion
// history, dependency checks and config scaffolding as subcommands.
package main
