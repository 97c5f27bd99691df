package domain

import "testing"

func TestCardRequest_CacheKeyDeterminism(t *testing.T) {
	req := func() CardRequest {
		return CardRequest{
			Username:    "alice",
			Theme:       "dark",
			Background:  "https://example.com/bg.png",
			Bio:         "hello",
			Skills:      []string{"go", "sql"},
			DisplayName: "Alice",
			Opacity:     0.8,
			Font:        "Ubuntu",
		}
	}

	a := req().CacheKey()
	b := req().CacheKey()
	if a != b {
		t.Errorf("same semantic request produced different keys:\n%q\n%q", a, b)
	}
}

func TestCardRequest_CacheKeyDistinguishesParameters(t *testing.T) {
	base := CardRequest{Username: "alice", Theme: "dark", Skills: []string{"go"}}

	mutations := []struct {
		name string
		req  CardRequest
	}{
		{"username", CardRequest{Username: "bob", Theme: "dark", Skills: []string{"go"}}},
		{"theme", CardRequest{Username: "alice", Theme: "light", Skills: []string{"go"}}},
		{"skills order", CardRequest{Username: "alice", Theme: "dark", Skills: []string{"go", "sql"}}},
		{"opacity", CardRequest{Username: "alice", Theme: "dark", Skills: []string{"go"}, Opacity: 0.5}},
		{"font", CardRequest{Username: "alice", Theme: "dark", Skills: []string{"go"}, Font: "Arial"}},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			if tt.req.CacheKey() == base.CacheKey() {
				t.Errorf("mutated %s produced an identical key %q", tt.name, base.CacheKey())
			}
		})
	}
}

func TestCardRequest_CacheKeyIgnoresForceRefresh(t *testing.T) {
	a := CardRequest{Username: "alice", Theme: "dark"}
	b := CardRequest{Username: "alice", Theme: "dark", ForceRefresh: true}
	if a.CacheKey() != b.CacheKey() {
		t.Error("ForceRefresh changed the cache key")
	}
}

func TestStatsKey(t *testing.T) {
	if got := StatsKey("bob"); got != "stats:bob" {
		t.Errorf("StatsKey = %q, want %q", got, "stats:bob")
	}
}
