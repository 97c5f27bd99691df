package service

import (
	"context"
	"fmt"
	"sort"

	"github-card/internal/cache"
	"github-card/internal/constants"
	"github-card/internal/domain"
	"github-card/internal/github"
	"github-card/internal/rank"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// GitHubAPI is the slice of the GitHub client the aggregator needs.
type GitHubAPI interface {
	GetUser(ctx context.Context, username string) (*github.User, error)
	GetRepos(ctx context.Context, username string, perPage int) ([]github.Repo, error)
	SearchCount(ctx context.Context, username string, kind github.SearchKind) (int, error)
}

// StatsService aggregates a user's activity from the primary user/repo
// endpoints and the best-effort search counters, grades the result and
// memoizes it per username.
type StatsService struct {
	gh     GitHubAPI
	memo   *cache.Cache[*domain.UserActivityStats]
	logger zerolog.Logger
}

func NewStatsService(gh GitHubAPI, memo *cache.Cache[*domain.UserActivityStats], logger zerolog.Logger) *StatsService {
	return &StatsService{gh: gh, memo: memo, logger: logger}
}

// GetStats returns the aggregated snapshot for username. Primary-source
// failures propagate typed; search-counter failures never fail the call
// and degrade the affected counter to zero.
func (s *StatsService) GetStats(ctx context.Context, username string, forceRefresh bool) (*domain.UserActivityStats, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	key := domain.StatsKey(username)
	if !forceRefresh {
		if stats, ok := s.memo.Get(key); ok {
			s.logger.Debug().Str("username", username).Msg("returning memoized stats")
			return stats, nil
		}
	}

	s.logger.Info().Str("username", username).Bool("refresh", forceRefresh).Msg("aggregating stats")

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	user, err := s.gh.GetUser(apiCtx, username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to fetch user")
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	repos, err := s.gh.GetRepos(apiCtx, username, constants.RepoPageSize)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to fetch repositories")
		return nil, fmt.Errorf("fetch repositories: %w", err)
	}

	var commits, prs, issues, contributions int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		commits = s.searchCount(gctx, username, github.KindCommits)
		return nil
	})
	g.Go(func() error {
		prs = s.searchCount(gctx, username, github.KindPRs)
		return nil
	})
	g.Go(func() error {
		issues = s.searchCount(gctx, username, github.KindIssues)
		return nil
	})
	g.Go(func() error {
		contributions = s.searchCount(gctx, username, github.KindContributions)
		return nil
	})
	// branches recover their own errors, the join cannot fail
	_ = g.Wait()

	stats := &domain.UserActivityStats{
		Username:         user.Login,
		DisplayName:      user.Name,
		Bio:              user.Bio,
		AvatarURL:        user.AvatarURL,
		TotalStars:       sumStars(repos),
		TotalCommits:     commits,
		TotalPRs:         prs,
		TotalIssues:      issues,
		Contributions:    contributions,
		TopLanguages:     topLanguages(repos, constants.TopLanguageCount),
		AccountCreatedAt: user.CreatedAt,
	}
	stats.Rank = rank.Compute(rank.Counters{
		Commits:       float64(commits),
		PRs:           float64(prs),
		Issues:        float64(issues),
		Stars:         float64(stats.TotalStars),
		Contributions: float64(contributions),
	})

	s.memo.Set(key, stats, constants.StatsCacheTTL)

	s.logger.Info().
		Str("username", user.Login).
		Int("stars", stats.TotalStars).
		Str("rank", string(stats.Rank.Level)).
		Msg("stats aggregated")
	return stats, nil
}

// searchCount wraps one best-effort counter fetch. Any failure, rate
// limit included, degrades to zero with a warning.
func (s *StatsService) searchCount(ctx context.Context, username string, kind github.SearchKind) int {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	count, err := s.gh.SearchCount(ctx, username, kind)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("username", username).
			Str("kind", string(kind)).
			Msg("search counter unavailable, defaulting to 0")
		return 0
	}
	return count
}

func sumStars(repos []github.Repo) int {
	var total int
	for _, r := range repos {
		total += r.StargazersCount
	}
	return total
}

// topLanguages ranks languages by how many repositories use them,
// most-used first. Ties break alphabetically so the result is stable.
func topLanguages(repos []github.Repo, limit int) []string {
	counts := make(map[string]int)
	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		counts[r.Language]++
	}
	if len(counts) == 0 {
		return nil
	}

	langs := make([]string, 0, len(counts))
	for name := range counts {
		langs = append(langs, name)
	}
	sort.Slice(langs, func(i, j int) bool {
		if counts[langs[i]] != counts[langs[j]] {
			return counts[langs[i]] > counts[langs[j]]
		}
		return langs[i] < langs[j]
	})

	if len(langs) > limit {
		langs = langs[:limit]
	}
	return langs
}
