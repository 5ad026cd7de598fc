package memory

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aretw0/dag2langgraph/pkg/ports"
)

// DefaultMaxEntries bounds a Cache built without WithMaxEntries.
const DefaultMaxEntries = 10000

type entry struct {
	result  ports.CachedResult
	expires time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// Cache implements ports.ResultCache in memory.
// The least recently used entry is evicted once the cache is full, and
// expired entries are swept on Set. Safe for concurrent use.
type Cache struct {
	data       *lru.Cache[string, entry]
	maxEntries int
	ttl        time.Duration
	now        func() time.Time

	mu        sync.Mutex
	nextSweep time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL expires entries after ttl. Zero keeps them until evicted.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithMaxEntries caps the number of stored entries. Non-positive values
// keep DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a new in-memory cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	// lru.New only fails for a non-positive size.
	c.data, _ = lru.New[string, entry](c.maxEntries)
	return c
}

// Get returns a copy of the cached result.
func (c *Cache) Get(ctx context.Context, key string) (ports.CachedResult, error) {
	e, ok := c.data.Get(key)
	if !ok {
		return ports.CachedResult{}, ports.ErrCacheMiss
	}
	if e.expired(c.now()) {
		c.data.Remove(key)
		return ports.CachedResult{}, ports.ErrCacheMiss
	}
	return clone(e.result), nil
}

// Set stores a copy of result so callers can reuse their buffers.
func (c *Cache) Set(ctx context.Context, key string, result ports.CachedResult) error {
	now := c.now()
	e := entry{result: clone(result)}
	if c.ttl > 0 {
		e.expires = now.Add(c.ttl)
	}
	c.data.Add(key, e)
	c.sweep(now)
	return nil
}

// sweep drops expired entries, at most once per TTL period.
func (c *Cache) sweep(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	if now.Before(c.nextSweep) {
		c.mu.Unlock()
		return
	}
	c.nextSweep = now.Add(c.ttl)
	c.mu.Unlock()

	for _, key := range c.data.Keys() {
		if e, ok := c.data.Peek(key); ok && e.expired(now) {
			c.data.Remove(key)
		}
	}
}

// Len reports the number of stored entries, expired ones not yet swept included.
func (c *Cache) Len() int {
	return c.data.Len()
}

func clone(r ports.CachedResult) ports.CachedResult {
	if r.Output != nil {
		r.Output = append([]byte(nil), r.Output...)
	}
	return r
}
