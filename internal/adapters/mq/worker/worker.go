// Package worker runs queued generation jobs and stores their results.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/teamforge/internal/domain/generator"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/types"
	"github.com/okian/teamforge/pkg/logger"
	"github.com/okian/teamforge/pkg/metrics"
)

// Runner partitions a roster.
type Runner interface {
	Run(req generator.Request) (generator.Outcome, error)
}

// Saver persists a match record.
type Saver interface {
	Save(ctx context.Context, m types.Match) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Job
}

// Worker processes jobs until its queue closes or it is told to stop.
type Worker interface {
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue  Queue
	runner Runner
	saver  Saver
	name   string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, runner Runner, saver Saver, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		runner:   runner,
		saver:    saver,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.logger.Error(ctx, "job failed", logger.String("match_id", job.ID), logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker after its current job.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process runs one job and stores the match. A generation failure is part
// of the result and is stored as such; only a failed save is returned.
func (w *InMemoryWorker) process(ctx context.Context, job model.Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	start := time.Now()
	metrics.AddWorkerActive(1)
	defer func() {
		metrics.AddWorkerActive(-1)
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	m := types.Pending(job)
	out, err := w.runner.Run(types.RequestFor(job))
	strategy := string(out.Strategy)
	if strategy == "" {
		strategy = "rejected"
	}
	metrics.RecordGeneration(strategy, start, err)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "generation")
		w.logger.Warn(ctx, "generation rejected", logger.String("match_id", job.ID), logger.Error(err))
		m = types.Fail(m, err)
	} else {
		metrics.RecordOptimizer(out.Passes, out.Swaps, out.Score)
		m = types.Complete(m, out)
		if m.ScoreCard != nil && m.ScoreCard.IsPerfect {
			metrics.RecordPerfectMatch()
		}
		w.logger.Debug(ctx, "generated",
			logger.String("match_id", job.ID),
			logger.Int("teams", len(out.Teams)),
			logger.Float64("score", out.Score),
			logger.Int("swaps", out.Swaps),
			logger.String("stop_reason", string(out.StopReason)),
		)
	}

	if err := w.saver.Save(ctx, m); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "store")
		return fmt.Errorf("save match %s: %w", job.ID, err)
	}
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a worker pool. A count below one means one per CPU.
func NewPool(workerCount int, queue Queue, runner Runner, saver Saver, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
	}
	for i := range p.workers {
		wopts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewInMemoryWorker(queue, runner, saver, wopts...)
	}
	p.logger = p.workers[0].logger.Named("pool")

	metrics.UpdateWorkerCount(workerCount)

	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue and lets workers drain it. Workers still busy
// when ctx ends are told to stop after their current job.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker drain timed out", logger.Int("worker_id", i))
			stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			_ = w.Shutdown(stopCtx)
			cancel()
		}
	}
	return ctx.Err()
}
