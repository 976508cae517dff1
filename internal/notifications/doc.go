// Package notifications pushes conversion results to ntfy.
//
// NewService returns a no-op implementation when no topic is configured, so
// callers publish unconditionally. Failure and skip events are suppressed
// when notifications.notify_failures is off.
package notifications
