// Package report builds read-only balance diagnostics for two teams.
package report

import (
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/scoring"
	"github.com/okian/teamforge/internal/domain/stats"
)

// Limits for a perfect match-up.
const (
	PerfectCountDiff    = 1
	PerfectAttrDiff     = 0.5
	PerfectPositionDiff = 2.0
)

// canonical uses fixed weights so cards stay comparable whatever the
// generator was configured with.
var canonical = scoring.New(
	scoring.WithCountWeight(scoring.TwoTeamCountWeight),
	scoring.WithAttributeScale(scoring.DefaultAttributeScale),
	scoring.WithAttributeWeights(1, 1, 1),
	scoring.WithPositionWeight(scoring.DefaultPositionWeight),
)

// BalanceScoreCard compares two teams.
type BalanceScoreCard struct {
	TeamA                 stats.TeamStats `json:"team_a"`
	TeamB                 stats.TeamStats `json:"team_b"`
	PlayerCountDiff       int             `json:"player_count_diff"`
	TechnikDiff           float64         `json:"technik_diff"`
	FitnessDiff           float64         `json:"fitness_diff"`
	SpielverstaendnisDiff float64         `json:"spielverstaendnis_diff"`
	PositionImbalance     float64         `json:"position_imbalance"`
	TotalVariance         float64         `json:"total_variance"`
	IsPerfect             bool            `json:"is_perfect"`
}

// BuildScoreCard reports how evenly a and b are matched.
func BuildScoreCard(a, b model.Team) BalanceScoreCard {
	sa, sb := stats.Calculate(a), stats.Calculate(b)
	c := canonical.Breakdown(sa, sb)

	return BalanceScoreCard{
		TeamA:                 sa,
		TeamB:                 sb,
		PlayerCountDiff:       c.PlayerCountDiff,
		TechnikDiff:           c.TechnikDiff,
		FitnessDiff:           c.FitnessDiff,
		SpielverstaendnisDiff: c.SpielverstaendnisDiff,
		PositionImbalance:     c.PositionImbalance,
		TotalVariance:         c.Total,
		IsPerfect: c.PlayerCountDiff <= PerfectCountDiff &&
			c.TechnikDiff < PerfectAttrDiff &&
			c.FitnessDiff < PerfectAttrDiff &&
			c.SpielverstaendnisDiff < PerfectAttrDiff &&
			c.PositionImbalance <= PerfectPositionDiff,
	}
}
