package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrUnknownFormat = errors.New("unknown roster format")
	ErrInvalidRoster = errors.New("invalid roster")
)
