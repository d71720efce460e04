package generator

import (
	"slices"

	"github.com/okian/teamforge/internal/domain/constraint"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/scoring"
	"github.com/okian/teamforge/internal/domain/stats"
)

// improvementEpsilon is the minimum score drop for a swap to count.
const improvementEpsilon = 0.01

// StopReason tells why the optimizer returned.
type StopReason string

// Stop reasons. None of them is a failure.
const (
	StopThreshold     StopReason = "threshold"
	StopConverged     StopReason = "converged"
	StopMaxIterations StopReason = "max_iterations"
)

// optimizer is a first-improvement pairwise-swap hill climber.
type optimizer struct {
	scorer    scoring.Scorer
	validator *constraint.Validator
	maxPasses int
	threshold float64
}

type optimizeResult struct {
	teams        []model.Team
	stats        []stats.TeamStats
	initialScore float64
	score        float64
	passes       int
	swaps        int
	reason       StopReason
}

// optimize runs passes until the score is under threshold, a full pass finds
// no improving swap, or maxPasses passes have run. Each pass either accepts
// exactly one swap or proves the current partition a local optimum; a
// second pass over an unchanged partition would scan the same pairs in the
// same order, so the climb ends at the first failed pass.
func (o *optimizer) optimize(teams []model.Team) optimizeResult {
	cur := slices.Clone(teams)
	st := stats.CalculateAll(cur)
	score := o.scorer.Score(st)

	res := optimizeResult{initialScore: score, reason: StopMaxIterations}
	for {
		if score < o.threshold {
			res.reason = StopThreshold
			break
		}
		if res.passes >= o.maxPasses {
			break
		}
		res.passes++

		next, nextStats, nextScore, ok := o.firstImprovement(cur, st, score)
		if !ok {
			res.reason = StopConverged
			break
		}
		cur, st, score = next, nextStats, nextScore
		res.swaps++
	}

	res.teams, res.stats, res.score = cur, st, score
	return res
}

// firstImprovement scans team pairs in index order and, within a pair,
// players in array order, returning the first swap that lowers the score
// by more than improvementEpsilon. Candidates are built as fresh teams, so
// a rejected one never touches cur.
func (o *optimizer) firstImprovement(cur []model.Team, st []stats.TeamStats, score float64) ([]model.Team, []stats.TeamStats, float64, bool) {
	cand := make([]stats.TeamStats, len(st))
	for i := 0; i < len(cur); i++ {
		for j := i + 1; j < len(cur); j++ {
			a, b := cur[i], cur[j]
			for x := 0; x < a.Len(); x++ {
				for y := 0; y < b.Len(); y++ {
					if !o.validator.AllowSwapWithStats(st[i], st[j], a.At(x), b.At(y)) {
						continue
					}
					na, nb := model.SwapPlayers(a, b, x, y)
					copy(cand, st)
					cand[i], cand[j] = stats.Calculate(na), stats.Calculate(nb)

					s := o.scorer.Score(cand)
					if s < score-improvementEpsilon {
						next := slices.Clone(cur)
						next[i], next[j] = na, nb
						return next, slices.Clone(cand), s, true
					}
				}
			}
		}
	}
	return nil, nil, score, false
}
