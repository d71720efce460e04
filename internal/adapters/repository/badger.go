package repository

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/okian/teamforge/internal/domain/types"
	"github.com/okian/teamforge/pkg/logger"
	"github.com/okian/teamforge/pkg/metrics"
)

// Key layout:
//
//	m/<id>      -> JSON match
//	s/<seq BE>  -> id, in insertion order
//	q           -> sequence lease
var (
	matchPrefix = []byte("m/")
	seqPrefix   = []byte("s/")
	seqKey      = []byte("q")
)

const seqBandwidth = 100

// BadgerStore persists matches in a badger database.
type BadgerStore struct {
	db    *badger.DB
	seq   *badger.Sequence
	count atomic.Int64
}

// badgerLogger routes badger's own messages through our logger.
type badgerLogger struct {
	log logger.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(context.Background(), fmt.Sprintf(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn(context.Background(), fmt.Sprintf(format, args...))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug(context.Background(), fmt.Sprintf(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Debug(context.Background(), fmt.Sprintf(format, args...))
}

// OpenBadgerStore opens (or creates) a badger-backed store.
func OpenBadgerStore(opts ...BadgerOption) (*BadgerStore, error) {
	cfg := badgerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var bopts badger.Options
	if cfg.dir == "" {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.dir, 0o750); err != nil {
			return nil, fmt.Errorf("create badger dir %s: %w", cfg.dir, err)
		}
		bopts = badger.DefaultOptions(cfg.dir).WithSyncWrites(cfg.syncWrites)
	}
	bopts = bopts.WithNumVersionsToKeep(1)
	if cfg.log != nil {
		bopts = bopts.WithLogger(badgerLogger{log: cfg.log})
	} else {
		bopts = bopts.WithLogger(nil)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	seq, err := db.GetSequence(seqKey, seqBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("badger sequence: %w", err)
	}

	s := &BadgerStore{db: db, seq: seq}
	if err := s.loadCount(); err != nil {
		_ = s.Close()
		return nil, err
	}
	metrics.UpdateMatchesStored(int(s.count.Load()))
	return s, nil
}

func (s *BadgerStore) loadCount() error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: matchPrefix})
		defer it.Close()
		var n int64
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		s.count.Store(n)
		return nil
	})
}

func matchKey(id string) []byte {
	return append(append([]byte{}, matchPrefix...), id...)
}

func orderKey(seq uint64) []byte {
	k := make([]byte, len(seqPrefix)+8)
	copy(k, seqPrefix)
	binary.BigEndian.PutUint64(k[len(seqPrefix):], seq)
	return k
}

func (s *BadgerStore) Save(_ context.Context, m types.Match) error {
	start := time.Now()
	defer metrics.RecordStoreLatency("save", start)

	if m.ID == "" {
		return ErrEmptyID
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match %s: %w", m.ID, err)
	}

	var inserted bool
	err = s.db.Update(func(txn *badger.Txn) error {
		key := matchKey(m.ID)
		_, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			n, err := s.seq.Next()
			if err != nil {
				return err
			}
			if err := txn.Set(orderKey(n), []byte(m.ID)); err != nil {
				return err
			}
			inserted = true
		case err != nil:
			return err
		}
		return txn.Set(key, raw)
	})
	if err != nil {
		metrics.RecordErrorByComponent("repository", "write")
		return fmt.Errorf("save match %s: %w", m.ID, err)
	}
	if inserted {
		metrics.UpdateMatchesStored(int(s.count.Add(1)))
	}
	return nil
}

func (s *BadgerStore) Get(_ context.Context, id string) (types.Match, error) {
	start := time.Now()
	defer metrics.RecordStoreLatency("get", start)

	var m types.Match
	err := s.db.View(func(txn *badger.Txn) error {
		return readMatch(txn, id, &m)
	})
	if errors.Is(err, ErrNotFound) {
		metrics.RecordErrorByComponent("repository", "not_found")
	}
	return m, err
}

func readMatch(txn *badger.Txn, id string, m *types.Match) error {
	item, err := txn.Get(matchKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, m)
	})
}

func (s *BadgerStore) Recent(_ context.Context, n int) ([]types.Match, error) {
	start := time.Now()
	defer metrics.RecordStoreLatency("recent", start)

	if n <= 0 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	var out []types.Match
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Reverse: true, Prefix: seqPrefix, PrefetchValues: true, PrefetchSize: n})
		defer it.Close()

		// Reverse iteration seeks to the largest key <= the seek key.
		seek := append(append([]byte{}, seqPrefix...), 0xFF)
		for it.Seek(seek); it.Valid() && len(out) < n; it.Next() {
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			var m types.Match
			if err := readMatch(txn, string(id), &m); err != nil {
				return err
			}
			out = append(out, m)
		}
		return nil
	})
	return out, err
}

func (s *BadgerStore) Count(context.Context) int {
	return int(s.count.Load())
}

// Close releases the sequence lease and closes the database.
func (s *BadgerStore) Close() error {
	var errs []error
	if s.seq != nil {
		errs = append(errs, s.seq.Release())
	}
	errs = append(errs, s.db.Close())
	return errors.Join(errs...)
}
