// Package constraint decides whether a hypothetical swap keeps a partition valid.
package constraint

import (
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/stats"
)

const defaultMaxSizeGap = 1

// Option applies a configuration option to the Validator.
type Option func(*Validator)

// WithCoverageRules enables the two-team rules: no team may lose its last
// goalkeeper, and no team may lose its last Defense, Midfield or Attack
// player, for every position the roster provides at all.
func WithCoverageRules(enabled bool) Option {
	return func(v *Validator) {
		v.coverage = enabled
	}
}

// WithBuddyGroups forbids swaps that move a member of any listed group.
// Groups with fewer than two members are ignored.
func WithBuddyGroups(groups [][]string) Option {
	return func(v *Validator) {
		for _, g := range groups {
			if len(g) < 2 {
				continue
			}
			for _, id := range g {
				v.grouped[id] = struct{}{}
			}
		}
	}
}

// WithMaxSizeGap sets the largest allowed team size difference.
func WithMaxSizeGap(n int) Option {
	return func(v *Validator) {
		if n >= 0 {
			v.maxSizeGap = n
		}
	}
}

// Validator holds roster-level facts needed to judge swaps.
type Validator struct {
	coverage   bool
	maxSizeGap int
	rosterHas  map[model.Position]bool
	grouped    map[string]struct{}
}

// NewValidator builds a Validator for roster.
func NewValidator(roster []model.Player, opts ...Option) *Validator {
	v := &Validator{
		maxSizeGap: defaultMaxSizeGap,
		rosterHas:  make(map[model.Position]bool, len(model.AllPositions)),
		grouped:    make(map[string]struct{}),
	}
	for _, p := range roster {
		for _, pos := range p.Positions {
			v.rosterHas[pos] = true
		}
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// AllowSwap reports whether exchanging a[i] with b[j] keeps every hard constraint.
func (v *Validator) AllowSwap(a, b model.Team, i, j int) bool {
	if i < 0 || i >= a.Len() || j < 0 || j >= b.Len() {
		return false
	}
	return v.AllowSwapWithStats(stats.Calculate(a), stats.Calculate(b), a.At(i), b.At(j))
}

// AllowSwapWithStats is AllowSwap for callers that already hold both teams' stats.
// out leaves team A for team B, in leaves team B for team A.
func (v *Validator) AllowSwapWithStats(sa, sb stats.TeamStats, out, in model.Player) bool {
	// A one-for-one swap keeps both sizes, so the gap is whatever it was.
	if absInt(sa.PlayerCount-sb.PlayerCount) > v.maxSizeGap {
		return false
	}

	if v.isGrouped(out.ID) || v.isGrouped(in.ID) {
		return false
	}

	if !v.coverage {
		return true
	}

	for _, pos := range model.AllPositions {
		if !v.rosterHas[pos] {
			continue
		}
		if loses(sa, pos, out, in) || loses(sb, pos, in, out) {
			return false
		}
	}
	return true
}

// loses reports whether a team covering pos stops covering it when out is
// replaced by in. A team that never covered pos cannot get worse.
func loses(s stats.TeamStats, pos model.Position, out, in model.Player) bool {
	before := s.Count(pos)
	if before == 0 {
		return false
	}
	after := before - boolInt(out.Plays(pos)) + boolInt(in.Plays(pos))
	return after == 0
}

func (v *Validator) isGrouped(id string) bool {
	_, ok := v.grouped[id]
	return ok
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
