package cache

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeClock drives the cache's notion of time in tests.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(t *testing.T) (*Cache[[]byte], *fakeClock) {
	t.Helper()
	c := New[[]byte](zerolog.Nop())
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c.now = clock.now
	return c, clock
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)

	c.Set("card:alice:light", []byte("svg"), time.Hour)

	got, ok := c.Get("card:alice:light")
	if !ok {
		t.Fatal("Get returned absent immediately after Set")
	}
	if string(got) != "svg" {
		t.Errorf("Get = %q, want %q", got, "svg")
	}
}

func TestCache_SetOverwrites(t *testing.T) {
	c, _ := newTestCache(t)

	c.Set("k", []byte("old"), time.Hour)
	c.Set("k", []byte("new"), time.Hour)

	got, ok := c.Get("k")
	if !ok || string(got) != "new" {
		t.Errorf("Get = %q, %v; want %q, true", got, ok, "new")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCache_ExpiredEntryIsAbsentAndRemoved(t *testing.T) {
	c, clock := newTestCache(t)

	c.Set("card:alice:light", []byte("svg"), 3600*time.Second)
	clock.advance(3601 * time.Second)

	if _, ok := c.Get("card:alice:light"); ok {
		t.Error("Get returned a value past its TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed on read, Len = %d", c.Len())
	}
}

func TestCache_GetMissing(t *testing.T) {
	c, _ := newTestCache(t)
	if _, ok := c.Get("nope"); ok {
		t.Error("Get returned a value for a missing key")
	}
}

func TestCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)

	c.Set("k", []byte("v"), time.Hour)
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Error("Get returned a value after Delete")
	}
}

func TestCache_DeleteByPattern(t *testing.T) {
	seed := func(c *Cache[[]byte]) {
		c.Set("card:bob:dark", []byte("1"), time.Hour)
		c.Set("card:bob:light", []byte("2"), time.Hour)
		c.Set("card:alice:dark", []byte("3"), time.Hour)
		c.Set("stats:bob", []byte("4"), time.Hour)
	}

	tests := []struct {
		name        string
		pattern     string
		wantRemoved int
		wantLeft    int
	}{
		{"glob scopes one user", "card:bob:*", 2, 2},
		{"substring", "bob", 3, 1},
		{"prefix glob", "stats:*", 1, 3},
		{"no match", "card:carol:*", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCache(t)
			seed(c)

			if got := c.DeleteByPattern(tt.pattern); got != tt.wantRemoved {
				t.Errorf("DeleteByPattern(%q) = %d, want %d", tt.pattern, got, tt.wantRemoved)
			}
			if c.Len() != tt.wantLeft {
				t.Errorf("Len = %d, want %d", c.Len(), tt.wantLeft)
			}
		})
	}
}

func TestCache_SweepEvictsExpired(t *testing.T) {
	c, clock := newTestCache(t)

	c.Set("short", []byte("1"), time.Minute)
	c.Set("long", []byte("2"), time.Hour)
	clock.advance(2 * time.Minute)

	c.sweep()

	if c.Len() != 1 {
		t.Fatalf("Len = %d after sweep, want 1", c.Len())
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("sweep removed a live entry")
	}
}

func TestCache_SweeperRuns(t *testing.T) {
	c := New[[]byte](zerolog.Nop())
	defer c.Stop()

	c.Set("stale", []byte("1"), -time.Second)
	c.StartSweeper(5 * time.Millisecond)

	deadline := time.After(time.Second)
	for c.Len() != 0 {
		select {
		case <-deadline:
			t.Fatal("sweeper did not evict the expired entry")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
}
