package profile

import "errors"

// Sentinel kinds for registration input.
var (
	ErrEmptyUsername = errors.New("username must not be empty")
	ErrUnknownAvatar = errors.New("unknown avatar")
)
