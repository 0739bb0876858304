// Package schemacache keeps parsed introspection schemas in memory, keyed by
// the SHA-256 of their source document, so clients that resend the same
// schema skip the parse.
package schemacache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
)

type entry struct {
	schema    *introspection.Schema
	expiresAt time.Time
}

// Cache is a TTL cache with a size cap. Cached schemas are shared between
// callers and must not be modified.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	stop       chan struct{}
	stopOnce   sync.Once
}

// New creates a cache and starts its cleanup goroutine. Call Stop to end it.
func New(ttl time.Duration, maxEntries int) *Cache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	c := &Cache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Key returns the cache key of a schema document.
func Key(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get returns a cached schema that has not expired.
func (c *Cache) Get(key string) (*introspection.Schema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.schema, true
}

// Set stores a schema, evicting the entry closest to expiry when full.
func (c *Cache) Set(key string, schema *introspection.Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	c.entries[key] = entry{schema: schema, expiresAt: time.Now().Add(c.ttl)}
}

// Parse returns the schema for data, parsing and caching it on a miss.
// Documents that fail to parse are not cached.
func (c *Cache) Parse(data []byte) (*introspection.Schema, error) {
	key := Key(data)
	if s, ok := c.Get(key); ok {
		return s, nil
	}
	s, err := introspection.Parse(data)
	if err != nil {
		return nil, err
	}
	c.Set(key, s)
	return s, nil
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// evictOldest must be called with the lock held.
func (c *Cache) evictOldest() {
	var oldest string
	var at time.Time
	for key, e := range c.entries {
		if oldest == "" || e.expiresAt.Before(at) {
			oldest, at = key, e.expiresAt
		}
	}
	delete(c.entries, oldest)
}

func (c *Cache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
