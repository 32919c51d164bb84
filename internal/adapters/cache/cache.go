// Package cache memoizes computed layouts.
package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/medals/internal/domain/layout"
	"github.com/okian/medals/internal/domain/types"
)

const defaultMaxSize = 64

// Key identifies one layout computation. Layouts are pure, so equal keys
// always map to equal results.
type Key struct {
	CatalogVersion string
	Preset         string
	Options        layout.Options
}

// Cache stores layout results. Stored results are shared between callers and
// must not be mutated.
type Cache interface {
	// Get returns the cached result for k.
	Get(ctx context.Context, k Key) (types.Result, bool)

	// Put stores res under k, evicting the oldest entry when full.
	Put(ctx context.Context, k Key, res types.Result)

	// Purge drops every entry.
	Purge(ctx context.Context)

	Size() int64
}

// entry is one element of the insertion-ordered list.
type entry struct {
	key  Key
	res  types.Result
	next *entry
}

// inMemoryCache keeps entries in a map plus a singly linked list in
// insertion order: head is the oldest entry, tail the newest.
type inMemoryCache struct {
	mu      sync.RWMutex
	entries map[Key]*entry
	head    *entry
	tail    *entry
	maxSize int
	size    atomic.Int64
}

// NewInMemoryCache creates a new bounded cache with configuration options.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{
		maxSize: defaultMaxSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.entries = make(map[Key]*entry)
	return c
}

// Get returns the cached result for k.
func (c *inMemoryCache) Get(_ context.Context, k Key) (types.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[k]
	if !ok {
		return types.Result{}, false
	}
	return e.res, true
}

// Put stores res under k. Re-putting an existing key replaces the value but
// keeps its position.
func (c *inMemoryCache) Put(_ context.Context, k Key, res types.Result) {
	if c.maxSize <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, exists := c.entries[k]; exists {
		e.res = res
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	e := &entry{key: k, res: res}
	if c.tail == nil {
		c.head = e
	} else {
		c.tail.next = e
	}
	c.tail = e
	c.entries[k] = e
	c.size.Add(1)
}

// Purge drops every entry.
func (c *inMemoryCache) Purge(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]*entry)
	c.head = nil
	c.tail = nil
	c.size.Store(0)
}

// evictOldest removes the head of the list.
// Must be called with c.mu.Lock() held.
func (c *inMemoryCache) evictOldest() {
	if c.head == nil {
		return
	}
	old := c.head
	c.head = old.next
	if c.head == nil {
		c.tail = nil
	}
	delete(c.entries, old.key)
	c.size.Add(-1)
}

// Size returns the current number of cached layouts.
func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}
