package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/okian/teamforge/internal/domain/types"
	"github.com/okian/teamforge/pkg/metrics"
)

const defaultHistorySize = 1000

// MemoryStore keeps the last historySize matches in memory.
type MemoryStore struct {
	mu          sync.RWMutex
	byID        map[string]types.Match
	order       []string // oldest first
	historySize int
	closed      bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		byID:        make(map[string]types.Match),
		historySize: defaultHistorySize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *MemoryStore) Save(_ context.Context, m types.Match) error {
	start := time.Now()
	defer metrics.RecordStoreLatency("save", start)

	if m.ID == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if _, ok := s.byID[m.ID]; !ok {
		s.order = append(s.order, m.ID)
		for len(s.order) > s.historySize {
			delete(s.byID, s.order[0])
			s.order = slices.Delete(s.order, 0, 1)
		}
	}
	s.byID[m.ID] = m
	metrics.UpdateMatchesStored(len(s.byID))
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (types.Match, error) {
	start := time.Now()
	defer metrics.RecordStoreLatency("get", start)

	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byID[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return types.Match{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m, nil
}

func (s *MemoryStore) Recent(_ context.Context, n int) ([]types.Match, error) {
	start := time.Now()
	defer metrics.RecordStoreLatency("recent", start)

	if n <= 0 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Match, 0, min(n, len(s.order)))
	for i := len(s.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.byID[s.order[i]])
	}
	return out, nil
}

func (s *MemoryStore) Count(context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
