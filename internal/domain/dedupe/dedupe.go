// Package dedupe maps client request keys to the match they created.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 50000

// Deduper remembers which match a request key produced so a retried
// submission returns the original match instead of starting a new one.
type Deduper interface {
	// Claim records key as owned by id unless it is already owned.
	// It returns the owning id and whether key had been claimed before.
	Claim(ctx context.Context, key, id string) (owner string, dup bool)

	// Release forgets key, letting it be claimed again. Used when a claimed
	// submission could not be enqueued.
	Release(ctx context.Context, key string)

	Size() int64
}

// node is one entry of the insertion-ordered list.
type node struct {
	key        string
	owner      string
	prev, next *node
}

// inMemoryDeduper keeps up to maxSize keys and evicts the oldest first.
// With maxSize <= 0 it never evicts.
type inMemoryDeduper struct {
	mu       sync.Mutex
	seen     map[string]*node
	head     *node // oldest
	tail     *node // newest
	maxSize  int
	size     atomic.Int64
	nodePool sync.Pool
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
		seen:    make(map[string]*node),
		nodePool: sync.Pool{
			New: func() any { return &node{} },
		},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *inMemoryDeduper) Claim(_ context.Context, key, id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n, ok := d.seen[key]; ok {
		return n.owner, true
	}

	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		d.unlink(d.head)
	}

	n := d.nodePool.Get().(*node)
	n.key, n.owner = key, id
	n.prev = d.tail
	if d.tail != nil {
		d.tail.next = n
	} else {
		d.head = n
	}
	d.tail = n
	d.seen[key] = n
	d.size.Add(1)

	return id, false
}

func (d *inMemoryDeduper) Release(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n, ok := d.seen[key]; ok {
		d.unlink(n)
	}
}

// unlink removes n from the list and the index. Caller holds d.mu.
func (d *inMemoryDeduper) unlink(n *node) {
	if n == nil {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		d.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		d.tail = n.prev
	}
	delete(d.seen, n.key)
	d.size.Add(-1)

	*n = node{}
	d.nodePool.Put(n)
}

// Size returns the current number of entries in the deduper.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
