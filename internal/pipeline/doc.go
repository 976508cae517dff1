// Package pipeline turns a batch of still images into a GIF by driving a
// transcoding engine through two stages.
//
// A Converter owns the batch written into the engine's file store and moves
// through Empty, FilesLoaded, Mp4Built and GifBuilt. Stage 1 renders the
// indexed PNG frames into a lossless intermediate video at frameCount/duration
// fps, fitted to the batch's largest width and height. Stage 2 transcodes that
// video with the arguments compiled from the chosen format and settings.
//
// Calling Convert before the engine is loaded or with no files is not an
// error: it logs a warning and returns a nil result. Decode failures, invalid
// settings and engine failures are returned to the caller. Nothing is
// retried.
package pipeline
