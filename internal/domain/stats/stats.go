// Package stats derives aggregate figures from a team.
package stats

import "github.com/okian/teamforge/internal/domain/model"

// TeamStats is recomputed on demand and never cached on the team.
type TeamStats struct {
	PlayerCount          int                    `json:"player_count"`
	TotalStrength        int                    `json:"total_strength"`
	AvgTechnik           float64                `json:"avg_technik"`
	AvgFitness           float64                `json:"avg_fitness"`
	AvgSpielverstaendnis float64                `json:"avg_spielverstaendnis"`
	PositionCounts       map[model.Position]int `json:"position_counts"`
	HasGoalkeeper        bool                   `json:"has_goalkeeper"`
}

// Count returns the tally for pos (zero when absent).
func (s TeamStats) Count(pos model.Position) int {
	return s.PositionCounts[pos]
}

// Calculate reduces a team to its stats. An empty team yields all zeros.
// A player contributes once to every position tag they list.
func Calculate(team model.Team) TeamStats {
	s := TeamStats{PositionCounts: make(map[model.Position]int, len(model.AllPositions))}
	n := team.Len()
	if n == 0 {
		return s
	}

	var tech, fit, spiel int
	for i := range n {
		p := team.At(i)
		tech += p.Technik
		fit += p.Fitness
		spiel += p.Spielverstaendnis
		for _, pos := range p.Positions {
			s.PositionCounts[pos]++
		}
	}

	s.PlayerCount = n
	s.TotalStrength = tech + fit + spiel
	s.AvgTechnik = float64(tech) / float64(n)
	s.AvgFitness = float64(fit) / float64(n)
	s.AvgSpielverstaendnis = float64(spiel) / float64(n)
	s.HasGoalkeeper = s.PositionCounts[model.Goalkeeper] > 0
	return s
}

// CalculateAll returns stats for each team in order.
func CalculateAll(teams []model.Team) []TeamStats {
	out := make([]TeamStats, len(teams))
	for i, t := range teams {
		out[i] = Calculate(t)
	}
	return out
}
