package constraint

import (
	"errors"
	"fmt"

	"github.com/okian/teamforge/internal/domain/model"
)

// Sentinel errors for partition checks.
var (
	ErrPlayerMissing    = errors.New("player missing from partition")
	ErrPlayerDuplicated = errors.New("player assigned more than once")
	ErrUnknownPlayer    = errors.New("team holds a player not on the roster")
	ErrSizeParity       = errors.New("team sizes differ by more than one")
)

// CheckPartition verifies that teams contain every roster player exactly
// once and that team sizes differ by at most one.
func CheckPartition(roster []model.Player, teams []model.Team) error {
	want := make(map[string]int, len(roster))
	for _, p := range roster {
		want[p.ID]++
	}

	got := make(map[string]int, len(roster))
	for ti, t := range teams {
		for _, id := range t.IDs() {
			if _, ok := want[id]; !ok {
				return fmt.Errorf("%w: %s in team %d", ErrUnknownPlayer, id, ti)
			}
			got[id]++
		}
	}

	for _, p := range roster {
		switch n := got[p.ID]; {
		case n == 0:
			return fmt.Errorf("%w: %s", ErrPlayerMissing, p.ID)
		case n > want[p.ID]:
			return fmt.Errorf("%w: %s (%d times)", ErrPlayerDuplicated, p.ID, n)
		}
	}

	if len(teams) == 0 {
		return nil
	}
	lo, hi := teams[0].Len(), teams[0].Len()
	for _, t := range teams[1:] {
		lo = min(lo, t.Len())
		hi = max(hi, t.Len())
	}
	if hi-lo > 1 {
		return fmt.Errorf("%w: min %d, max %d", ErrSizeParity, lo, hi)
	}
	return nil
}
