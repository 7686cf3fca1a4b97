// Package cache provides an in-memory key/value store with per-entry expiry.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is used when Set is called without a TTL.
const DefaultTTL = 5 * time.Minute

// Clock supplies the current time. Tests inject a fake one.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a mutex-guarded map whose entries expire a fixed duration after
// insertion. An entry is visible to Get only while now < expiresAt; expired
// entries stay stored until read, purged or deleted.
type TTL[V any] struct {
	mu         sync.Mutex
	items      map[string]entry[V]
	clock      Clock
	defaultTTL time.Duration
}

// Option configures a TTL cache.
type Option func(*options)

type options struct {
	clock      Clock
	defaultTTL time.Duration
}

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithDefaultTTL overrides DefaultTTL. Non-positive values are ignored.
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.defaultTTL = d
		}
	}
}

// New returns an empty cache.
func New[V any](opts ...Option) *TTL[V] {
	o := options{clock: SystemClock{}, defaultTTL: DefaultTTL}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTL[V]{
		items:      make(map[string]entry[V]),
		clock:      o.clock,
		defaultTTL: o.defaultTTL,
	}
}

// Set stores value under key with the default TTL, replacing any previous entry.
func (c *TTL[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, 0)
}

// SetWithTTL stores value under key for ttl. Non-positive ttl means the default.
func (c *TTL[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[V]{value: value, expiresAt: c.clock.Now().Add(ttl)}
}

// Get returns the live value stored under key.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	en, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.clock.Now().Before(en.expiresAt) {
		delete(c.items, key)
		var zero V
		return zero, false
	}
	return en.value, true
}

// Delete removes key. Deleting a missing key is a no-op.
func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes every entry.
func (c *TTL[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.items)
}

// Purge drops expired entries and reports how many were removed.
func (c *TTL[V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock.Now()
	n := 0
	for k, en := range c.items {
		if !now.Before(en.expiresAt) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

// Len reports the number of stored entries, expired or not.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
