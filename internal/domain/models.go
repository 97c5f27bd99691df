package domain

import (
	"time"
)

// UserActivityStats is an aggregated snapshot of one user's GitHub
// activity. It is built fresh on every aggregation and never mutated
// after being returned; re-fetches supersede it with a new value.
type UserActivityStats struct {
	Username         string
	DisplayName      string
	Bio              string
	AvatarURL        string
	TotalStars       int
	TotalCommits     int      // best-effort, 0 when the search source failed
	TotalPRs         int      // best-effort
	TotalIssues      int      // best-effort
	Contributions    int      // best-effort
	TopLanguages     []string // most-used first, at most 3
	AccountCreatedAt time.Time
	Rank             RankResult
}

type RankLevel string

const (
	LevelS       RankLevel = "S"
	LevelAPlus   RankLevel = "A+"
	LevelA       RankLevel = "A"
	LevelAMinus  RankLevel = "A-"
	LevelBPlus   RankLevel = "B+"
	LevelB       RankLevel = "B"
	LevelBMinus  RankLevel = "B-"
	LevelCPlus   RankLevel = "C+"
	LevelC       RankLevel = "C"
	LevelUnknown RankLevel = "?"
)

// RankResult grades a user's activity. Score is a rank distance in
// [0,100] where lower means more active; Percentile is 100-Score, so
// higher raw activity always yields a higher percentile.
type RankResult struct {
	Level      RankLevel
	Score      float64
	Percentile float64
}
