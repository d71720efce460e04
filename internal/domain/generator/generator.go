// Package generator partitions a roster into balanced teams.
//
// Generation is synchronous, pure and deterministic: the same roster, team
// count and configuration always produce the same teams in the same order.
// Hard constraints that the roster cannot satisfy (a single keeper, a
// missing position, an oversized buddy group) are relaxed rather than
// reported, so any valid request yields a partition.
package generator

import (
	"fmt"

	"github.com/okian/teamforge/internal/domain/constraint"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/stats"
)

// Request describes one generation call.
type Request struct {
	Players   []model.Player
	TeamCount int
	Strategy  StrategyKind
	// Buddies lists player ids that must share a team. Two-team path only.
	Buddies [][]string
}

// Outcome is the full result of a generation call.
type Outcome struct {
	Strategy     StrategyKind      `json:"strategy"`
	Teams        []model.Team      `json:"teams"`
	Stats        []stats.TeamStats `json:"stats"`
	InitialScore float64           `json:"initial_score"`
	Score        float64           `json:"score"`
	Passes       int               `json:"passes"`
	Swaps        int               `json:"swaps"`
	StopReason   StopReason        `json:"stop_reason"`
}

// Generator holds a configuration and is safe for concurrent use.
type Generator struct {
	cfg Config
}

// New creates a Generator with default configuration and the given options.
func New(opts ...Option) *Generator {
	g := &Generator{cfg: DefaultConfig()}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Config returns the effective configuration.
func (g *Generator) Config() Config { return g.cfg }

// Generate splits roster into teamCount teams on the N-team path.
func (g *Generator) Generate(roster []model.Player, teamCount int) ([]model.Team, error) {
	out, err := g.Run(Request{Players: roster, TeamCount: teamCount, Strategy: StrategyNTeam})
	if err != nil {
		return nil, err
	}
	return out.Teams, nil
}

// GenerateTwoTeam splits roster into two teams on the goalkeeper-aware path.
func (g *Generator) GenerateTwoTeam(roster []model.Player, buddies [][]string) (model.Team, model.Team, error) {
	out, err := g.Run(Request{Players: roster, TeamCount: 2, Strategy: StrategyTwoTeam, Buddies: buddies})
	if err != nil {
		return model.Team{}, model.Team{}, err
	}
	return out.Teams[teamA], out.Teams[teamB], nil
}

// Run validates req, allocates, optimizes and checks the partition.
func (g *Generator) Run(req Request) (Outcome, error) {
	kind := resolveKind(req.Strategy, req.TeamCount)
	strategy, err := g.strategyFor(kind, req)
	if err != nil {
		return Outcome{}, err
	}

	alloc := strategy.Allocate(req.Players)
	opt := &optimizer{
		scorer:    strategy.Scorer(),
		validator: strategy.Validator(req.Players, alloc),
		maxPasses: g.cfg.MaxSwapIterations,
		threshold: g.cfg.VarianceThreshold,
	}
	res := opt.optimize(alloc.Teams)

	if err := constraint.CheckPartition(req.Players, res.teams); err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrPartitionBroken, err)
	}

	return Outcome{
		Strategy:     kind,
		Teams:        res.teams,
		Stats:        res.stats,
		InitialScore: res.initialScore,
		Score:        res.score,
		Passes:       res.passes,
		Swaps:        res.swaps,
		StopReason:   res.reason,
	}, nil
}

func (g *Generator) strategyFor(kind StrategyKind, req Request) (Strategy, error) {
	if err := validate(req, kind); err != nil {
		return nil, err
	}
	switch kind {
	case StrategyTwoTeam:
		groups, err := resolveGroups(req.Players, req.Buddies)
		if err != nil {
			return nil, err
		}
		return newTwoTeamStrategy(groups, g.scorerOptions()), nil
	default:
		return newNTeamStrategy(req.TeamCount, g.scorerOptions()), nil
	}
}

// validate enforces the boundary preconditions before any work is done.
func validate(req Request, kind StrategyKind) error {
	n := len(req.Players)
	switch {
	case req.TeamCount < 2:
		return fmt.Errorf("%w: team count %d is below 2", ErrInvalidArgument, req.TeamCount)
	case n < 2:
		return fmt.Errorf("%w: roster of %d is below 2", ErrInvalidArgument, n)
	case n < req.TeamCount:
		return fmt.Errorf("%w: roster of %d cannot fill %d teams", ErrInvalidArgument, n, req.TeamCount)
	}
	switch kind {
	case StrategyTwoTeam:
		if req.TeamCount != 2 {
			return fmt.Errorf("%w: two-team strategy with %d teams", ErrInvalidArgument, req.TeamCount)
		}
	case StrategyNTeam:
		if len(req.Buddies) > 0 {
			return fmt.Errorf("%w: buddy groups need the two-team strategy", ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidArgument, kind)
	}
	if err := model.ValidateIDs(req.Players); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}
