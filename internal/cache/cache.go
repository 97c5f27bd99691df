// Package cache provides the in-process TTL store used for both the
// per-username stats memo and the rendered-card artifacts. It is a
// plain map behind a read/write lock: single process only, no external
// synchronization, state is lost on restart.
package cache

import (
	"path"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	logger  zerolog.Logger

	// now is swappable in tests
	now func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

func New[T any](logger zerolog.Logger) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		logger:  logger,
		now:     time.Now,
		done:    make(chan struct{}),
	}
}

// Get returns the live value under key. An expired entry behaves like a
// missing one and is removed as a side effect.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// re-check under the write lock, a Set may have raced us
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, overwriting any existing entry. The
// expiry is computed from the call time.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[T]{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// DeleteByPattern removes every entry whose key matches pattern and
// returns how many were removed. A pattern containing '*' is matched
// as a glob against the whole key; anything else matches as a plain
// substring. Callers scope deletions with canonical key prefixes such
// as "card:" or "stats:".
func (c *Cache[T]) DeleteByPattern(pattern string) int {
	glob := strings.ContainsRune(pattern, '*')

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		match := false
		if glob {
			ok, err := path.Match(pattern, key)
			match = err == nil && ok
		} else {
			match = strings.Contains(key, pattern)
		}
		if match {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// StartSweeper evicts expired entries on a fixed interval until Stop is
// called. It is a safety net against entries that are never re-read.
func (c *Cache[T]) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.sweep()
			case <-c.done:
				return
			}
		}
	}()
}

func (c *Cache[T]) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *Cache[T]) sweep() {
	now := c.now()

	c.mu.Lock()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	remaining := len(c.entries)
	c.mu.Unlock()

	if removed > 0 {
		c.logger.Debug().Int("removed", removed).Int("remaining", remaining).Msg("cache sweep completed")
	}
}
