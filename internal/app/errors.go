package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrRosterTooLarge = errors.New("roster too large")
	ErrBackpressure   = errors.New("job queue is full")
)
