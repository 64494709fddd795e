package store

import "errors"

// Sentinel kinds for failed reads. Exported getters collapse all of them
// into the record's default value.
var (
	ErrNotFound = errors.New("record not found")
	ErrDecode   = errors.New("record could not be decoded")
	ErrBackend  = errors.New("storage backend failure")
)
