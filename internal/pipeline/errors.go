package pipeline

import "errors"

var (
	// ErrInvalidSetting marks a selection or format that cannot produce a
	// valid command.
	ErrInvalidSetting = errors.New("invalid setting")
	// ErrInputTooLarge marks an input image above the configured size limit.
	ErrInputTooLarge = errors.New("input too large")
)
