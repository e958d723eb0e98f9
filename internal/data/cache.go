package data

import (
	"os"
	"sync"
	"time"

	"demand-profile/internal/engine"
)

// resultEntry is one cached generation result.
type resultEntry struct {
	Result    *engine.Result
	ExpiresAt time.Time
}

// ResultCache keeps finished generation runs in memory so callers can
// fetch a run's profile by ID after the synchronous response returned
// only the summary.
type ResultCache struct {
	mu    sync.RWMutex
	store map[string]*resultEntry
	ttl   time.Duration
}

// NewResultCache creates a cache with the given TTL; the
// RESULT_CACHE_TTL environment variable overrides it when parseable.
func NewResultCache(ttl time.Duration) *ResultCache {
	if ttlStr := os.Getenv("RESULT_CACHE_TTL"); ttlStr != "" {
		if parsed, err := time.ParseDuration(ttlStr); err == nil {
			ttl = parsed
		}
	}
	c := &ResultCache{
		store: make(map[string]*resultEntry),
		ttl:   ttl,
	}
	go c.cleanup()
	return c
}

// Get retrieves a cached result if present and not expired.
func (c *ResultCache) Get(id string) (*engine.Result, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[id]
	if !exists || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Result, true
}

// Set stores a result under the given run ID.
func (c *ResultCache) Set(id string, result *engine.Result) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[id] = &resultEntry{
		Result:    result,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *ResultCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*resultEntry)
}

// cleanup periodically removes expired entries.
func (c *ResultCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for id, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, id)
			}
		}
		c.mu.Unlock()
	}
}
