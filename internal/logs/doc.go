// Package logs reads the img2gif log file for the "img2gif logs" command.
//
// Tail returns the last N lines (negative offset) or everything appended
// after a byte offset, optionally waiting for new lines in follow mode.
// Match narrows the output to lines containing a substring, which is how
// the CLI filters by conversion or session id.
package logs
