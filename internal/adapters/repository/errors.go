package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("match not found")
	ErrInvalidLimit = errors.New("invalid history limit")
	ErrEmptyID      = errors.New("match id must not be empty")
	ErrClosed       = errors.New("store closed")
)
