package generator

import (
	"github.com/okian/teamforge/internal/domain/constraint"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/scoring"
	"github.com/okian/teamforge/internal/domain/stats"
)

// nTeamStrategy is the quota-bounded greedy allocator for any team count.
type nTeamStrategy struct {
	teamCount  int
	scorer     *scoring.ImbalanceScorer
	priorities map[model.Position]float64
}

func newNTeamStrategy(teamCount int, opts []scoring.Option) *nTeamStrategy {
	return &nTeamStrategy{
		teamCount:  teamCount,
		scorer:     scoring.NewNTeam(opts...),
		priorities: scoring.NTeamPriorities(),
	}
}

func (s *nTeamStrategy) Kind() StrategyKind { return StrategyNTeam }

func (s *nTeamStrategy) Scorer() scoring.Scorer { return s.scorer }

func (s *nTeamStrategy) Validator(roster []model.Player, _ Allocation) *constraint.Validator {
	return constraint.NewValidator(roster)
}

// quotas fixes each team's capacity before any player is placed: the first
// n%k teams take one extra player. A team is eligible only while below its
// own quota, which is what keeps players from being lost or doubled.
func quotas(n, k int) []int {
	q := make([]int, k)
	target, remainder := n/k, n%k
	for i := range q {
		q[i] = target
		if i < remainder {
			q[i]++
		}
	}
	return q
}

// Allocate places the strongest remaining player on the weakest eligible team.
func (s *nTeamStrategy) Allocate(roster []model.Player) Allocation {
	quota := quotas(len(roster), s.teamCount)
	teams := make([]model.Team, s.teamCount)

	for _, p := range sortByTotalDesc(roster) {
		all := stats.CalculateAll(teams)

		chosen := -1
		for i := range teams {
			if teams[i].Len() >= quota[i] {
				continue
			}
			if chosen < 0 || all[i].TotalStrength < all[chosen].TotalStrength {
				chosen = i
			}
		}

		if p.IsVersatile() {
			chosen = s.positionOverride(p, chosen, teams, all, quota)
		}
		teams[chosen] = teams[chosen].Append(p)
	}

	return Allocation{Teams: teams}
}

// positionOverride moves a versatile player to an eligible team of similar
// strength that is short of the player's best-fit position.
func (s *nTeamStrategy) positionOverride(p model.Player, chosen int, teams []model.Team, all []stats.TeamStats, quota []int) int {
	pos := s.bestFit(p, all[chosen])
	window := 2 * p.Total()
	need := all[chosen].Count(pos)

	best := chosen
	for i := range teams {
		if i == chosen || teams[i].Len() >= quota[i] {
			continue
		}
		if absInt(all[i].TotalStrength-all[chosen].TotalStrength) > window {
			continue
		}
		if all[i].Count(pos) >= need-1 {
			continue
		}
		if best == chosen ||
			all[i].Count(pos) < all[best].Count(pos) ||
			(all[i].Count(pos) == all[best].Count(pos) && all[i].TotalStrength < all[best].TotalStrength) {
			best = i
		}
	}
	return best
}

// bestFit picks the player's position the team has fewest of; ties go to
// the higher priority, then to the earlier listed tag.
func (s *nTeamStrategy) bestFit(p model.Player, team stats.TeamStats) model.Position {
	best := p.Positions[0]
	for _, pos := range p.Positions[1:] {
		c, bc := team.Count(pos), team.Count(best)
		if c < bc || (c == bc && s.priorities[pos] > s.priorities[best]) {
			best = pos
		}
	}
	return best
}
