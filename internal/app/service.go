// Package service provides the application service behind the HTTP API and
// the CLI. It owns the generator, the match store, the idempotency cache and
// the asynchronous job pipeline.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/okian/teamforge/internal/adapters/mq/queue"
	workerpool "github.com/okian/teamforge/internal/adapters/mq/worker"
	"github.com/okian/teamforge/internal/adapters/repository"
	"github.com/okian/teamforge/internal/config"
	"github.com/okian/teamforge/internal/domain/dedupe"
	"github.com/okian/teamforge/internal/domain/generator"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/report"
	"github.com/okian/teamforge/internal/domain/types"
	"github.com/okian/teamforge/pkg/logger"
	"github.com/okian/teamforge/pkg/metrics"
)

// GenerateRequest is one generation call as received by the service.
type GenerateRequest struct {
	// RequestID makes Submit idempotent. Optional.
	RequestID string
	Players   []model.Player
	TeamCount int
	Strategy  string
	Buddies   [][]string
	// Tuning applies to synchronous generation only.
	Tuning *Tuning
}

// Service implements the API dependencies for team generation.
type Service struct {
	mu sync.RWMutex

	cfg       *config.Config
	generator *generator.Generator
	store     repository.Store
	deduper   dedupe.Deduper
	queue     *jobqueue.InMemoryQueue
	pool      *workerpool.Pool

	started bool
	cancel  context.CancelFunc
	logger  logger.Logger
	now     func() time.Time
}

// New constructs a Service. Components are built on Start.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: config.New(),
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.generator = generator.New(generator.WithConfig(s.cfg.Generator()))

	return s
}

// Start initializes the store and the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}

	if s.store == nil {
		store, err := s.openStore()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		s.store = store
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.cfg.DedupeSize))
	s.queue = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.cfg.QueueSize))

	// Workers outlive the start context; Stop ends them.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.pool = workerpool.NewPool(s.cfg.WorkerCount, s.queue, s.generator, s.store,
		workerpool.WithLogger(s.logger))
	s.pool.Start(runCtx)

	s.started = true
	s.logger.Info(ctx, "service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queue_size", s.cfg.QueueSize),
		logger.Int("dedupe_size", s.cfg.DedupeSize),
		logger.String("store", s.cfg.StoreBackend),
	)
	return nil
}

func (s *Service) openStore() (repository.Store, error) {
	switch s.cfg.StoreBackend {
	case config.BackendBadger:
		return repository.OpenBadgerStore(
			repository.WithDir(s.cfg.BadgerDir),
			repository.WithLogger(s.logger),
		)
	default:
		return repository.NewMemoryStore(repository.WithHistorySize(s.cfg.HistorySize)), nil
	}
}

// Stop drains queued jobs until ctx ends, then closes the store.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping service")

	var errs []error
	if err := s.pool.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("drain workers: %w", err))
	}
	s.cancel()
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}

	s.started = false
	s.logger.Info(ctx, "service stopped")
	return errors.Join(errs...)
}

// running reports ErrNotStarted before Start or after Stop.
func (s *Service) running() error {
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

func (s *Service) checkRoster(players []model.Player) error {
	if limit := s.cfg.MaxRosterSize; limit > 0 && len(players) > limit {
		return fmt.Errorf("%w: %d players, limit %d", ErrRosterTooLarge, len(players), limit)
	}
	return nil
}

func (s *Service) job(req GenerateRequest) model.Job {
	return model.Job{
		ID:        uuid.NewString(),
		RequestID: req.RequestID,
		Players:   req.Players,
		TeamCount: req.TeamCount,
		Strategy:  req.Strategy,
		Buddies:   req.Buddies,
		Submitted: s.now().UTC(),
	}
}

// Generate runs a request synchronously and stores the resulting match.
// Rejected requests are not stored.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (types.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.running(); err != nil {
		return types.Match{}, err
	}
	if err := s.checkRoster(req.Players); err != nil {
		return types.Match{}, err
	}

	gen := s.generator
	if req.Tuning != nil {
		gen = generator.New(generator.WithConfig(req.Tuning.apply(s.generator.Config())))
	}

	start := time.Now()
	job := s.job(req)
	out, err := gen.Run(types.RequestFor(job))
	if err != nil {
		metrics.RecordGeneration("rejected", start, err)
		return types.Match{}, err
	}
	metrics.RecordGeneration(string(out.Strategy), start, nil)
	metrics.RecordOptimizer(out.Passes, out.Swaps, out.Score)

	m := types.Complete(types.Pending(job), out)
	if m.ScoreCard != nil && m.ScoreCard.IsPerfect {
		metrics.RecordPerfectMatch()
	}
	if err := s.store.Save(ctx, m); err != nil {
		metrics.RecordErrorByComponent("service", "store")
		return types.Match{}, fmt.Errorf("save match %s: %w", m.ID, err)
	}

	s.logger.Debug(ctx, "generated",
		logger.String("match_id", m.ID),
		logger.Int("players", len(req.Players)),
		logger.Int("teams", len(m.Teams)),
		logger.Float64("score", m.Score),
	)
	return m, nil
}

// Submit queues a request. A repeated RequestID returns the id of the first
// submission with duplicate set. The queued match is stored as pending
// before it is enqueued.
func (s *Service) Submit(ctx context.Context, req GenerateRequest) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.running(); err != nil {
		return "", false, err
	}
	if err := s.checkRoster(req.Players); err != nil {
		return "", false, err
	}

	job := s.job(req)
	if req.RequestID != "" {
		if owner, dup := s.deduper.Claim(ctx, req.RequestID, job.ID); dup {
			metrics.RecordDuplicateRequest()
			s.logger.Debug(ctx, "duplicate request",
				logger.String("request_id", req.RequestID),
				logger.String("match_id", owner),
			)
			return owner, true, nil
		}
	}

	pending := types.Pending(job)
	if err := s.store.Save(ctx, pending); err != nil {
		s.release(ctx, req.RequestID)
		return "", false, fmt.Errorf("save match %s: %w", job.ID, err)
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		s.release(ctx, req.RequestID)
		// The pending record must not stay pending forever.
		if serr := s.store.Save(context.WithoutCancel(ctx), types.Fail(pending, err)); serr != nil {
			metrics.RecordErrorByComponent("service", "store")
			s.logger.Error(ctx, "failed to store rejected match",
				logger.String("match_id", job.ID),
				logger.Error(serr),
			)
		}
		if errors.Is(err, jobqueue.ErrFull) {
			return "", false, fmt.Errorf("%w: %w", ErrBackpressure, err)
		}
		return "", false, fmt.Errorf("enqueue %s: %w", job.ID, err)
	}
	return job.ID, false, nil
}

func (s *Service) release(ctx context.Context, key string) {
	if key != "" {
		s.deduper.Release(ctx, key)
	}
}

// Match returns a stored match by id.
func (s *Service) Match(ctx context.Context, id string) (types.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.running(); err != nil {
		return types.Match{}, err
	}
	return s.store.Get(ctx, id)
}

// Recent returns up to n matches, newest first. n must be within
// [1, MaxListLimit].
func (s *Service) Recent(ctx context.Context, n int) ([]types.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.running(); err != nil {
		return nil, err
	}
	if n < 1 || n > s.cfg.MaxListLimit {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", repository.ErrInvalidLimit, n, s.cfg.MaxListLimit)
	}
	return s.store.Recent(ctx, n)
}

// ScoreCard compares two caller-supplied teams. Player ids must be unique
// across both.
func (s *Service) ScoreCard(_ context.Context, a, b []model.Player) (report.BalanceScoreCard, error) {
	all := make([]model.Player, 0, len(a)+len(b))
	all = append(append(all, a...), b...)
	if err := model.ValidateIDs(all); err != nil {
		return report.BalanceScoreCard{}, fmt.Errorf("%w: %w", generator.ErrInvalidArgument, err)
	}
	card := report.BuildScoreCard(model.NewTeam(a...), model.NewTeam(b...))
	if card.IsPerfect {
		metrics.RecordPerfectMatch()
	}
	return card, nil
}

// MaxListLimit is the largest accepted Recent size.
func (s *Service) MaxListLimit() int { return s.cfg.MaxListLimit }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.cfg.WorkerCount,
		"queueSize":   s.cfg.QueueSize,
		"dedupeSize":  s.cfg.DedupeSize,
		"store":       s.cfg.StoreBackend,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		matches := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["matches"] = matches
		stats["pendingKeys"] = s.deduper.Size()

		metrics.UpdateMatchesStored(matches)
		metrics.UpdateWorkerCount(s.pool.Size())
	}

	return stats
}
