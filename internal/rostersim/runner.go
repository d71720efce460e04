package rostersim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/teamforge/internal/adapters/roster"
	"github.com/okian/teamforge/internal/domain/types"
	"github.com/okian/teamforge/pkg/logger"
)

type generateBody struct {
	RequestID string          `json:"request_id,omitempty"`
	Players   []roster.Record `json:"players"`
	TeamCount int             `json:"team_count"`
}

type submitResponse struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// counters are updated concurrently by the request workers.
type counters struct {
	generated, succeeded, rejected, failed, violations, perfect atomic.Int64
}

// Run submits cfg.Rosters random rosters and verifies every result.
// Partition violations are counted, not returned; transport failures end the
// run only when the context ends.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	cfg = cfg.normalized()
	log := logger.Named("rostersim")
	stats := Stats{StartTime: time.Now()}

	log.Info(ctx, "starting roster simulation",
		logger.String("base_url", cfg.BaseURL),
		logger.Int("rosters", cfg.Rosters),
		logger.Int("workers", cfg.Workers),
		logger.Bool("async", cfg.Async),
	)

	gen, err := NewGenerator()
	if err != nil {
		return stats, fmt.Errorf("roster generator: %w", err)
	}
	c := newClient(cfg)
	if _, err := c.do(ctx, http.MethodGet, "/healthz", nil, nil, http.StatusOK); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	var n counters
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Rosters; i++ {
		if gctx.Err() != nil {
			break
		}
		size := cfg.MinPlayers + rand.IntN(cfg.MaxPlayers-cfg.MinPlayers+1)
		teams := 2 + rand.IntN(min(cfg.MaxTeams, size)-1)
		body := generateBody{Players: gen.Roster(size), TeamCount: teams}
		if cfg.Async {
			body.RequestID = "sim-" + uuid.NewString()
		}
		n.generated.Add(1)

		g.Go(func() error {
			m, err := c.generate(gctx, cfg.Async, body)
			var se *errStatus
			switch {
			case errors.As(err, &se) && se.code < http.StatusInternalServerError:
				n.rejected.Add(1)
				log.Warn(gctx, "roster rejected", logger.Int("status", se.code), logger.String("body", se.body))
				return nil
			case err != nil:
				if gctx.Err() != nil {
					return gctx.Err()
				}
				n.failed.Add(1)
				log.Debug(gctx, "request failed", logger.Error(err))
				return nil
			}

			if err := Verify(body.Players, body.TeamCount, m); err != nil {
				n.violations.Add(1)
				log.Error(gctx, "partition check failed", logger.String("match_id", m.ID), logger.Error(err))
				return nil
			}
			n.succeeded.Add(1)
			if m.ScoreCard != nil && m.ScoreCard.IsPerfect {
				n.perfect.Add(1)
			}
			return nil
		})
	}
	runErr := g.Wait()

	stats.Generated = int(n.generated.Load())
	stats.Succeeded = int(n.succeeded.Load())
	stats.Rejected = int(n.rejected.Load())
	stats.Failed = int(n.failed.Load())
	stats.Violations = int(n.violations.Load())
	stats.Perfect = int(n.perfect.Load())
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("succeeded", stats.Succeeded),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Int("violations", stats.Violations),
		logger.Int("perfect", stats.Perfect),
		logger.Duration("duration", stats.Duration),
	)
	return stats, runErr
}

// generate runs one roster through the sync or async endpoint.
func (c *client) generate(ctx context.Context, async bool, body generateBody) (types.Match, error) {
	var m types.Match
	if !async {
		_, err := c.do(ctx, http.MethodPost, "/generate", body, &m, http.StatusOK)
		return m, err
	}

	var ack submitResponse
	if _, err := c.do(ctx, http.MethodPost, "/matches", body, &ack, http.StatusAccepted, http.StatusOK); err != nil {
		return m, err
	}
	ticker := time.NewTicker(DefaultPoll)
	defer ticker.Stop()
	for {
		if _, err := c.do(ctx, http.MethodGet, "/matches/"+ack.ID, nil, &m, http.StatusOK); err != nil {
			return m, err
		}
		if m.Status.Terminal() {
			return m, nil
		}
		select {
		case <-ctx.Done():
			return m, ctx.Err()
		case <-ticker.C:
		}
	}
}
