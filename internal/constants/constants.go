package constants

import "time"

const (
	// StatsCacheTTL bounds how long an aggregated stats snapshot is reused
	// before GitHub is asked again.
	StatsCacheTTL = 5 * time.Minute

	// CardCacheTTL is the lifetime of a fully rendered card artifact.
	CardCacheTTL = 4 * time.Hour

	// CacheSweepInterval is how often expired entries that were never
	// re-read get evicted in bulk.
	CacheSweepInterval = 10 * time.Minute
)

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	// RepoPageSize is the single page of most-recently-updated repositories
	// the aggregator derives stars and languages from.
	RepoPageSize = 100

	TopLanguageCount = 3
)

const (
	ShutdownTimeout = 5 * time.Second
)
