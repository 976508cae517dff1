// Package ffmpeg implements engine.Engine on top of an ffmpeg executable.
//
// Each engine owns a session directory below a shared work root; that
// directory is the engine's file store and the working directory of every
// command. Commands run one at a time: an in-process mutex serializes callers
// and a file lock in the work root serializes processes sharing the root.
// A started command runs to completion even if the caller's context is
// cancelled.
package ffmpeg
