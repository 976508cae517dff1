// Package naming assigns the virtual filenames used inside the engine's
// session store.
//
// Frames are written as <base>_<index>.<ext> with a 1-based index that
// matches batch order, which lets the image2 demuxer read them back through a
// printf-style pattern (see SequencePattern). The package has no I/O.
package naming
