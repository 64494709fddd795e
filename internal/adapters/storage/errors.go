package storage

import "errors"

// Sentinel kinds for backend errors.
var (
	ErrUnavailable = errors.New("storage unavailable")
	ErrClosed      = errors.New("storage closed")
)
