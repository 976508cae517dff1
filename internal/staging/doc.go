// Package staging manages the engine session directories below the work
// directory.
//
// Each conversion gets its own session directory, which the engine removes
// on Close. Sessions left behind by crashed or killed runs are swept by
// CleanStale at the start of every convert and on demand through
// "img2gif work clean".
package staging
