package repository

import "github.com/okian/teamforge/pkg/logger"

// MemoryOption applies a configuration option to the MemoryStore.
type MemoryOption func(*MemoryStore)

// WithHistorySize bounds how many matches are kept; the oldest go first.
func WithHistorySize(n int) MemoryOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.historySize = n
		}
	}
}

type badgerConfig struct {
	dir        string
	syncWrites bool
	log        logger.Logger
}

// BadgerOption applies a configuration option to OpenBadgerStore.
type BadgerOption func(*badgerConfig)

// WithDir stores data under dir. Without it the database lives in memory.
func WithDir(dir string) BadgerOption {
	return func(c *badgerConfig) {
		c.dir = dir
	}
}

// WithSyncWrites makes every write durable before Save returns.
func WithSyncWrites(enabled bool) BadgerOption {
	return func(c *badgerConfig) {
		c.syncWrites = enabled
	}
}

// WithLogger forwards badger's internal messages to l.
func WithLogger(l logger.Logger) BadgerOption {
	return func(c *badgerConfig) {
		c.log = l
	}
}
