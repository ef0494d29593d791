/* cache.go
 * Generic TTL cache used in two independently configured instances: one keyed by
 * request URL holding raw upstream responses, one keyed by tournament id holding
 * computed tournament status. Entries expire at read time; there is no eager
 * sweep and no capacity bound, which is acceptable for the small static universe
 * of tournaments and request URLs
 */

package cache

import (
	"sync"
	"time"

	"github.com/itbasis/go-clock"
)

// DefaultTTL matches the five minute TTL both cache instances are configured
// with.
const DefaultTTL = 5 * time.Minute

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a key/value store with per-entry expiry. The zero value is not
// usable; construct with New.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
	ttl     time.Duration
	clock   clock.Clock
}

// New returns a cache whose Set entries live for defaultTTL. The clock is
// injected so tests can advance time instead of sleeping.
func New[K comparable, V any](defaultTTL time.Duration, clk clock.Clock) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     defaultTTL,
		clock:   clk,
	}
}

// Get returns the live value for key. An expired entry is deleted and reported
// as absent.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the cache's default TTL, overwriting any
// existing live entry.
func (c *Cache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.clock.Now().Add(ttl),
	}
}

// Delete removes the entry for key if present.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry. Administrative tournament edits call this on the
// status cache: a blunt whole-cache invalidation, chosen for correctness over
// precision.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]entry[V])
}

// Len reports the number of stored entries, including any that have expired
// but not yet been read.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
