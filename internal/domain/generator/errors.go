package generator

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrInvalidArgument marks a request rejected before any allocation work.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPartitionBroken marks a result that failed the final partition check.
	ErrPartitionBroken = errors.New("partition invariant violated")
)
