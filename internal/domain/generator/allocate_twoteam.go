package generator

import (
	"cmp"
	"slices"

	"github.com/okian/teamforge/internal/domain/constraint"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/scoring"
)

const (
	teamA = 0
	teamB = 1
)

// twoTeamStrategy seeds keepers first, then snake-drafts everyone else.
type twoTeamStrategy struct {
	groups [][]model.Player
	scorer *scoring.ImbalanceScorer
}

func newTwoTeamStrategy(groups [][]model.Player, opts []scoring.Option) *twoTeamStrategy {
	return &twoTeamStrategy{
		groups: groups,
		scorer: scoring.New(opts...),
	}
}

func (s *twoTeamStrategy) Kind() StrategyKind { return StrategyTwoTeam }

func (s *twoTeamStrategy) Scorer() scoring.Scorer { return s.scorer }

func (s *twoTeamStrategy) Validator(roster []model.Player, alloc Allocation) *constraint.Validator {
	return constraint.NewValidator(roster,
		constraint.WithCoverageRules(true),
		constraint.WithBuddyGroups(alloc.Groups),
	)
}

// snakeSide maps the i-th pick to A,B,B,A,A,B,...
func snakeSide(i int) int {
	if (i/2)%2 == 0 {
		return i % 2
	}
	return 1 - i%2
}

// draft tracks the two teams under fixed quotas of ceil(n/2) and floor(n/2).
type draft struct {
	teams    [2]model.Team
	quota    [2]int
	strength [2]int
	keepers  [2]int
	placed   map[string]bool
}

func newDraft(n int) *draft {
	return &draft{
		quota:  [2]int{(n + 1) / 2, n / 2},
		placed: make(map[string]bool, n),
	}
}

func (d *draft) room(side int) int { return d.quota[side] - d.teams[side].Len() }

// side returns pref if it still has room, the other team otherwise.
func (d *draft) side(pref int) int {
	if d.room(pref) > 0 {
		return pref
	}
	return 1 - pref
}

func (d *draft) place(side int, p model.Player) {
	d.teams[side] = d.teams[side].Append(p)
	d.strength[side] += p.Total()
	if p.IsGoalkeeper() {
		d.keepers[side]++
	}
	d.placed[p.ID] = true
}

// Allocate builds the first two-team split.
func (s *twoTeamStrategy) Allocate(roster []model.Player) Allocation {
	d := newDraft(len(roster))
	kept := s.placeGroups(d)

	var keepers, others []model.Player
	for _, p := range roster {
		if d.placed[p.ID] {
			continue
		}
		if p.IsGoalkeeper() {
			keepers = append(keepers, p)
		} else {
			others = append(others, p)
		}
	}

	// With no groups this yields: one keeper to A, two split A/B, more
	// snaked A,B,B,A by strength.
	for i, k := range sortByTotalDesc(keepers) {
		pref := snakeSide(i)
		if d.keepers[teamA] != d.keepers[teamB] {
			pref = teamA
			if d.keepers[teamB] < d.keepers[teamA] {
				pref = teamB
			}
		}
		d.place(d.side(pref), k)
	}

	// Rounds of two alternate A-then-B and B-then-A.
	for i, p := range sortByTotalDesc(others) {
		d.place(d.side(snakeSide(i)), p)
	}

	return Allocation{Teams: []model.Team{d.teams[teamA], d.teams[teamB]}, Groups: kept}
}

// placeGroups seats buddy groups before anyone else, largest first. A group
// that no longer fits either team is left for the regular draft.
func (s *twoTeamStrategy) placeGroups(d *draft) [][]string {
	if len(s.groups) == 0 {
		return nil
	}
	order := slices.Clone(s.groups)
	slices.SortStableFunc(order, func(a, b []model.Player) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(groupStrength(b), groupStrength(a))
	})

	var kept [][]string
	for _, g := range order {
		fitsA, fitsB := d.room(teamA) >= len(g), d.room(teamB) >= len(g)
		var side int
		switch {
		case fitsA && fitsB:
			side = teamA
			if d.strength[teamB] < d.strength[teamA] ||
				(d.strength[teamB] == d.strength[teamA] && d.room(teamB) > d.room(teamA)) {
				side = teamB
			}
		case fitsA:
			side = teamA
		case fitsB:
			side = teamB
		default:
			continue
		}
		for _, p := range g {
			d.place(side, p)
		}
		kept = append(kept, groupIDs(g))
	}
	return kept
}
