// Package types contains the views shared by the service and its adapters.
package types

import (
	"time"

	"github.com/okian/teamforge/internal/domain/generator"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/report"
	"github.com/okian/teamforge/internal/domain/stats"
)

// Status is the lifecycle state of a stored match.
type Status string

// Match states.
const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Terminal reports whether no further transition will happen.
func (s Status) Terminal() bool { return s == StatusDone || s == StatusFailed }

// Match is a generation job and, once done, its result.
type Match struct {
	ID        string                   `json:"id"`
	RequestID string                   `json:"request_id,omitempty"`
	Status    Status                   `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
	Strategy  string                   `json:"strategy,omitempty"`
	Teams     []model.Team             `json:"teams,omitempty"`
	Stats     []stats.TeamStats        `json:"stats,omitempty"`
	ScoreCard *report.BalanceScoreCard `json:"scorecard,omitempty"`
	Score     float64                  `json:"score"`
	Passes    int                      `json:"passes,omitempty"`
	Swaps     int                      `json:"swaps,omitempty"`
	Error     string                   `json:"error,omitempty"`
}

// Pending is the record of a job that has not run yet.
func Pending(job model.Job) Match {
	return Match{
		ID:        job.ID,
		RequestID: job.RequestID,
		Status:    StatusPending,
		CreatedAt: job.Submitted,
		Strategy:  job.Strategy,
	}
}

// Complete fills m with a generation outcome. Two-team results get a scorecard.
func Complete(m Match, out generator.Outcome) Match {
	m.Status = StatusDone
	m.Strategy = string(out.Strategy)
	m.Teams = out.Teams
	m.Stats = out.Stats
	m.Score = out.Score
	m.Passes = out.Passes
	m.Swaps = out.Swaps
	m.Error = ""
	if len(out.Teams) == 2 {
		card := report.BuildScoreCard(out.Teams[0], out.Teams[1])
		m.ScoreCard = &card
	}
	return m
}

// Fail marks m failed with err.
func Fail(m Match, err error) Match {
	m.Status = StatusFailed
	m.Error = err.Error()
	return m
}

// RequestFor turns a job into a generator request.
func RequestFor(job model.Job) generator.Request {
	return generator.Request{
		Players:   job.Players,
		TeamCount: job.TeamCount,
		Strategy:  generator.StrategyKind(job.Strategy),
		Buddies:   job.Buddies,
	}
}

// Summary is the list view of a match.
type Summary struct {
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	TeamSizes []int     `json:"team_sizes"`
	Score     float64   `json:"score"`
}

// Summarize builds the list view of m.
func Summarize(m Match) Summary {
	sizes := make([]int, len(m.Teams))
	for i, t := range m.Teams {
		sizes[i] = t.Len()
	}
	return Summary{
		ID:        m.ID,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		TeamSizes: sizes,
		Score:     m.Score,
	}
}
