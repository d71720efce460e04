package generator

import (
	"cmp"
	"slices"

	"github.com/okian/teamforge/internal/domain/constraint"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/scoring"
)

// StrategyKind selects an allocation strategy.
type StrategyKind string

// Strategy kinds. Auto picks the two-team path for two teams and the
// N-team path otherwise.
const (
	StrategyAuto    StrategyKind = "auto"
	StrategyNTeam   StrategyKind = "n_team"
	StrategyTwoTeam StrategyKind = "two_team"
)

// Allocation is the first partition produced by a strategy.
type Allocation struct {
	Teams []model.Team
	// Groups lists the buddy groups that were kept together and must stay so.
	Groups [][]string
}

// Strategy bundles an initial allocator with the scorer and validator the
// optimizer uses afterwards, so both paths share one scoring and one
// validation implementation.
type Strategy interface {
	Kind() StrategyKind
	Allocate(roster []model.Player) Allocation
	Scorer() scoring.Scorer
	Validator(roster []model.Player, alloc Allocation) *constraint.Validator
}

// resolveKind turns Auto into a concrete kind.
func resolveKind(kind StrategyKind, teamCount int) StrategyKind {
	if kind == "" || kind == StrategyAuto {
		if teamCount == 2 {
			return StrategyTwoTeam
		}
		return StrategyNTeam
	}
	return kind
}

func (g *Generator) scorerOptions() []scoring.Option {
	return []scoring.Option{
		scoring.WithAttributeWeights(g.cfg.TechnikWeight, g.cfg.FitnessWeight, g.cfg.SpielverstaendnisWeight),
		scoring.WithPositionWeight(g.cfg.PositionWeight),
	}
}

// sortByTotalDesc returns a copy ordered by total descending; ties keep roster order.
func sortByTotalDesc(players []model.Player) []model.Player {
	out := slices.Clone(players)
	slices.SortStableFunc(out, func(a, b model.Player) int {
		return cmp.Compare(b.Total(), a.Total())
	})
	return out
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
