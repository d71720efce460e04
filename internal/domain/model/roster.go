package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for roster validation.
var (
	ErrEmptyID     = errors.New("player id is empty")
	ErrDuplicateID = errors.New("duplicate player id")
)

// ValidateIDs checks that every player carries a non-empty id unique within the roster.
func ValidateIDs(players []Player) error {
	seen := make(map[string]struct{}, len(players))
	for i, p := range players {
		if p.ID == "" {
			return fmt.Errorf("player at index %d: %w", i, ErrEmptyID)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// Index returns a lookup from player id to the player's roster index.
func Index(players []Player) map[string]int {
	idx := make(map[string]int, len(players))
	for i, p := range players {
		idx[p.ID] = i
	}
	return idx
}
