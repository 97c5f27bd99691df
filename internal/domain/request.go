package domain

import (
	"strconv"
	"strings"
)

// CardRequest carries the username and every display parameter that
// affects the rendered card.
type CardRequest struct {
	Username     string
	Theme        string
	Background   string
	Bio          string
	Skills       []string
	DisplayName  string
	Opacity      float64
	Font         string
	ForceRefresh bool
}

// CacheKey builds the canonical fingerprint for the rendered artifact.
// Field order is fixed; two semantically identical requests produce
// byte-identical keys. ForceRefresh is a control flag, not an input to
// the rendered output, so it is excluded.
func (r CardRequest) CacheKey() string {
	var b strings.Builder
	b.WriteString("card:")
	b.WriteString(r.Username)
	b.WriteByte(':')
	b.WriteString(r.Theme)
	b.WriteByte(':')
	b.WriteString(r.Background)
	b.WriteByte(':')
	b.WriteString(r.Bio)
	b.WriteByte(':')
	b.WriteString(strings.Join(r.Skills, ","))
	b.WriteByte(':')
	b.WriteString(r.DisplayName)
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(r.Opacity, 'f', -1, 64))
	b.WriteByte(':')
	b.WriteString(r.Font)
	return b.String()
}

// StatsKey is the memo-cache key for one username's aggregated stats.
func StatsKey(username string) string {
	return "stats:" + username
}
