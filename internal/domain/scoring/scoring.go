// Package scoring measures how unevenly matched a set of teams is.
package scoring

import (
	"math"

	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/stats"
)

// Default scoring weights.
const (
	DefaultAttributeScale = 2.0
	DefaultPositionWeight = 2.0
	TwoTeamCountWeight    = 5.0
	NTeamCountWeight      = 10.0
	defaultAttrWeight     = 1.0
)

// NTeamPriorities weights position count gaps on the N-team path.
func NTeamPriorities() map[model.Position]float64 {
	return map[model.Position]float64{
		model.Goalkeeper: 1.5,
		model.Defense:    1.2,
		model.Attack:     1.1,
		model.Midfield:   1.0,
	}
}

// Option applies a configuration option to the ImbalanceScorer.
type Option func(*ImbalanceScorer)

// WithCountWeight sets the weight of the player count gap.
func WithCountWeight(w float64) Option {
	return func(s *ImbalanceScorer) {
		if w >= 0 {
			s.countWeight = w
		}
	}
}

// WithAttributeScale sets the shared multiplier applied to every attribute gap.
func WithAttributeScale(w float64) Option {
	return func(s *ImbalanceScorer) {
		if w >= 0 {
			s.attrScale = w
		}
	}
}

// WithAttributeWeights sets the per-attribute weights. Negative values are ignored.
func WithAttributeWeights(technik, fitness, spielverstaendnis float64) Option {
	return func(s *ImbalanceScorer) {
		if technik >= 0 {
			s.technikWeight = technik
		}
		if fitness >= 0 {
			s.fitnessWeight = fitness
		}
		if spielverstaendnis >= 0 {
			s.spielWeight = spielverstaendnis
		}
	}
}

// WithPositionWeight sets the weight of the position imbalance term.
func WithPositionWeight(w float64) Option {
	return func(s *ImbalanceScorer) {
		if w >= 0 {
			s.positionWeight = w
		}
	}
}

// WithPositionPriorities scales each position's count gap. Nil means uniform.
func WithPositionPriorities(p map[model.Position]float64) Option {
	return func(s *ImbalanceScorer) {
		if p == nil {
			s.priorities = nil
			return
		}
		s.priorities = make(map[model.Position]float64, len(p))
		for pos, w := range p {
			if w > 0 {
				s.priorities[pos] = w
			}
		}
	}
}

// Scorer rates a partition; lower is better and zero is perfect.
type Scorer interface {
	// Pair scores two teams against each other.
	Pair(a, b stats.TeamStats) float64
	// Score averages Pair over every unordered pair of teams.
	Score(all []stats.TeamStats) float64
}

// Components breaks a pair score into its unweighted parts.
type Components struct {
	PlayerCountDiff       int     `json:"player_count_diff"`
	TechnikDiff           float64 `json:"technik_diff"`
	FitnessDiff           float64 `json:"fitness_diff"`
	SpielverstaendnisDiff float64 `json:"spielverstaendnis_diff"`
	PositionImbalance     float64 `json:"position_imbalance"`
	Total                 float64 `json:"total"`
}

// ImbalanceScorer implements Scorer as a weighted sum of stat gaps.
type ImbalanceScorer struct {
	countWeight    float64
	attrScale      float64
	technikWeight  float64
	fitnessWeight  float64
	spielWeight    float64
	positionWeight float64
	priorities     map[model.Position]float64
}

// New creates a scorer with two-team defaults: count weight 5, uniform positions.
func New(opts ...Option) *ImbalanceScorer {
	s := &ImbalanceScorer{
		countWeight:    TwoTeamCountWeight,
		attrScale:      DefaultAttributeScale,
		technikWeight:  defaultAttrWeight,
		fitnessWeight:  defaultAttrWeight,
		spielWeight:    defaultAttrWeight,
		positionWeight: DefaultPositionWeight,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewNTeam creates a scorer that treats size parity as near-hard and
// scales position gaps by NTeamPriorities.
func NewNTeam(opts ...Option) *ImbalanceScorer {
	base := []Option{
		WithCountWeight(NTeamCountWeight),
		WithPositionPriorities(NTeamPriorities()),
	}
	return New(append(base, opts...)...)
}

// Breakdown returns the gaps between a and b and their weighted total.
func (s *ImbalanceScorer) Breakdown(a, b stats.TeamStats) Components {
	c := Components{
		PlayerCountDiff:       absInt(a.PlayerCount - b.PlayerCount),
		TechnikDiff:           math.Abs(a.AvgTechnik - b.AvgTechnik),
		FitnessDiff:           math.Abs(a.AvgFitness - b.AvgFitness),
		SpielverstaendnisDiff: math.Abs(a.AvgSpielverstaendnis - b.AvgSpielverstaendnis),
		PositionImbalance:     s.PositionImbalance(a, b),
	}
	c.Total = float64(c.PlayerCountDiff)*s.countWeight +
		c.TechnikDiff*s.attrScale*s.technikWeight +
		c.FitnessDiff*s.attrScale*s.fitnessWeight +
		c.SpielverstaendnisDiff*s.attrScale*s.spielWeight +
		c.PositionImbalance*s.positionWeight
	return c
}

// Pair scores two teams.
func (s *ImbalanceScorer) Pair(a, b stats.TeamStats) float64 {
	return s.Breakdown(a, b).Total
}

// Score averages Pair over all unordered pairs. Fewer than two teams score zero.
func (s *ImbalanceScorer) Score(all []stats.TeamStats) float64 {
	if len(all) < 2 {
		return 0
	}
	var sum float64
	var pairs int
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			sum += s.Pair(all[i], all[j])
			pairs++
		}
	}
	return sum / float64(pairs)
}

// PositionImbalance sums per-position count gaps, each scaled by its priority.
func (s *ImbalanceScorer) PositionImbalance(a, b stats.TeamStats) float64 {
	var total float64
	for _, pos := range model.AllPositions {
		diff := absInt(a.Count(pos) - b.Count(pos))
		if diff == 0 {
			continue
		}
		total += float64(diff) * s.priority(pos)
	}
	return total
}

func (s *ImbalanceScorer) priority(pos model.Position) float64 {
	if s.priorities == nil {
		return 1
	}
	if w, ok := s.priorities[pos]; ok {
		return w
	}
	return 1
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
