// Package cache provides a bounded, time-limited in-memory cache used for
// request-scoped lookups (domain resolution, title enrichment). No entry
// outlives its TTL and the cache never grows past its configured size.
package cache

import (
	"sync"
	"time"
)

// TTL is a concurrency-safe cache with per-cache TTL and a max entry bound.
// When full, the entry closest to expiry is evicted first.
type TTL[K comparable, V any] struct {
	mu         sync.Mutex
	entries    map[K]entry[V]
	ttl        time.Duration
	maxEntries int
	now        func() time.Time // injectable for testing
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewTTL creates a cache. ttl must be positive; maxEntries <= 0 means a
// default bound of 1024.
func NewTTL[K comparable, V any](ttl time.Duration, maxEntries int) *TTL[K, V] {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &TTL[K, V]{
		entries:    make(map[K]entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// WithNow sets a fixed clock for testing.
func (c *TTL[K, V]) WithNow(now func() time.Time) *TTL[K, V] {
	c.now = now
	return c
}

// Get returns the cached value for key if present and unexpired.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, evicting the soonest-to-expire entry if the
// cache is at capacity.
func (c *TTL[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// GetOrSet returns the cached value for key, or computes and stores it.
// compute runs outside the lock so slow lookups don't serialize the cache;
// if two callers race the same key, the second write wins (both results are
// equivalent for our lookups, so duplicate work is the only cost).
func (c *TTL[K, V]) GetOrSet(key K, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, v)
	return v, nil
}

// Len returns the number of live entries, expired ones included until swept.
func (c *TTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TTL[K, V]) evictOldestLocked() {
	var oldestKey K
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt = k, e.expiresAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
