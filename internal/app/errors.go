package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoProfile     = errors.New("no profile registered")
	ErrInvalidPoints = errors.New("points must not be negative or overflow the total")
)
