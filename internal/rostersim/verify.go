package rostersim

import (
	"errors"
	"fmt"

	"github.com/okian/teamforge/internal/adapters/roster"
	"github.com/okian/teamforge/internal/domain/constraint"
	"github.com/okian/teamforge/internal/domain/types"
)

// ErrViolation marks a returned partition that breaks a guarantee.
var ErrViolation = errors.New("partition violation")

// Verify checks that m splits records into teamCount teams holding every
// player exactly once with sizes at most one apart.
func Verify(records []roster.Record, teamCount int, m types.Match) error {
	if m.Status != types.StatusDone {
		return fmt.Errorf("%w: match %s is %s: %s", ErrViolation, m.ID, m.Status, m.Error)
	}
	if len(m.Teams) != teamCount {
		return fmt.Errorf("%w: %d teams, want %d", ErrViolation, len(m.Teams), teamCount)
	}
	players, err := roster.ToPlayers(records)
	if err != nil {
		return err
	}
	if err := constraint.CheckPartition(players, m.Teams); err != nil {
		return fmt.Errorf("%w: %w", ErrViolation, err)
	}
	return nil
}
