package generator

import (
	"fmt"
	"slices"

	"github.com/okian/teamforge/internal/domain/model"
)

// resolveGroups validates caller supplied buddy groups against the roster,
// merges groups that share a player, and drops singletons. Members come
// back in roster order; groups are ordered by their first member.
func resolveGroups(roster []model.Player, raw [][]string) ([][]model.Player, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	index := model.Index(roster)

	parent := make([]int, len(roster))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	inGroup := make([]bool, len(roster))
	for gi, g := range raw {
		first := -1
		for _, id := range g {
			i, ok := index[id]
			if !ok {
				return nil, fmt.Errorf("%w: buddy group %d references unknown player %q", ErrInvalidArgument, gi, id)
			}
			inGroup[i] = true
			if first < 0 {
				first = i
				continue
			}
			ra, rb := find(first), find(i)
			if ra != rb {
				parent[max(ra, rb)] = min(ra, rb)
			}
		}
	}

	byRoot := make(map[int][]model.Player)
	var roots []int
	for i, p := range roster {
		if !inGroup[i] {
			continue
		}
		r := find(i)
		if _, seen := byRoot[r]; !seen {
			roots = append(roots, r)
		}
		byRoot[r] = append(byRoot[r], p)
	}
	slices.Sort(roots)

	limit := (len(roster) + 1) / 2
	var groups [][]model.Player
	for _, r := range roots {
		members := byRoot[r]
		if len(members) < 2 {
			continue
		}
		if len(members) > limit {
			return nil, fmt.Errorf("%w: buddy group of %d exceeds team size %d", ErrInvalidArgument, len(members), limit)
		}
		groups = append(groups, members)
	}
	return groups, nil
}

func groupStrength(g []model.Player) int {
	var s int
	for _, p := range g {
		s += p.Total()
	}
	return s
}

func groupIDs(g []model.Player) []string {
	ids := make([]string, len(g))
	for i, p := range g {
		ids[i] = p.ID
	}
	return ids
}
