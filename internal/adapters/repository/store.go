// Package repository stores generated matches.
package repository

import (
	"context"

	"github.com/okian/teamforge/internal/domain/types"
)

// Store persists matches by id and lists them newest first.
type Store interface {
	// Save inserts m or replaces the match with the same id. A replaced
	// match keeps its place in the history.
	Save(ctx context.Context, m types.Match) error

	// Get returns the match with id or ErrNotFound.
	Get(ctx context.Context, id string) (types.Match, error)

	// Recent returns up to n matches, newest first. n must be positive.
	Recent(ctx context.Context, n int) ([]types.Match, error)

	// Count returns the number of stored matches.
	Count(ctx context.Context) int

	Close() error
}
