package service

import (
	"context"
	"fmt"
	"strings"

	"github-card/internal/assets"
	"github-card/internal/cache"
	"github-card/internal/constants"
	"github-card/internal/domain"
	"github-card/internal/render"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// StatsProvider yields aggregated stats for a username.
type StatsProvider interface {
	GetStats(ctx context.Context, username string, forceRefresh bool) (*domain.UserActivityStats, error)
}

// Renderer turns a request plus stats into image bytes.
type Renderer interface {
	Render(req domain.CardRequest, stats *domain.UserActivityStats) ([]byte, error)
}

// AssetLoader resolves renderer assets (fonts).
type AssetLoader interface {
	Load(ctx context.Context) (*assets.Fonts, error)
}

// CardService drives one card request end to end: canonical key,
// artifact cache lookup, and on a miss the stats + assets fetch, the
// render, and the cache refill. Concurrent misses for the same key
// share a single render through the flight group.
type CardService struct {
	stats     StatsProvider
	renderer  Renderer
	assets    AssetLoader
	artifacts *cache.Cache[[]byte]
	statsMemo *cache.Cache[*domain.UserActivityStats]
	flight    singleflight.Group
	logger    zerolog.Logger
}

func NewCardService(
	stats StatsProvider,
	renderer Renderer,
	assetLoader AssetLoader,
	artifacts *cache.Cache[[]byte],
	statsMemo *cache.Cache[*domain.UserActivityStats],
	logger zerolog.Logger,
) *CardService {
	return &CardService{
		stats:     stats,
		renderer:  renderer,
		assets:    assetLoader,
		artifacts: artifacts,
		statsMemo: statsMemo,
		logger:    logger,
	}
}

// Serve returns the rendered card bytes for req.
func (s *CardService) Serve(ctx context.Context, req domain.CardRequest) ([]byte, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, domain.ErrMissingUsername
	}
	req.Theme = render.NormalizeTheme(req.Theme)
	key := req.CacheKey()

	if req.ForceRefresh {
		s.artifacts.Delete(key)
		s.statsMemo.Delete(domain.StatsKey(req.Username))
		s.logger.Debug().Str("key", key).Msg("forced refresh, dropped cached artifact and stats")
	} else if img, ok := s.artifacts.Get(key); ok {
		s.logger.Debug().Str("key", key).Msg("card cache hit")
		return img, nil
	}

	v, err, shared := s.flight.Do(key, func() (any, error) {
		return s.build(ctx, req, key)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug().Str("key", key).Msg("joined in-flight render")
	}
	return v.([]byte), nil
}

func (s *CardService) build(ctx context.Context, req domain.CardRequest, key string) ([]byte, error) {
	jobID, err := gonanoid.New()
	if err != nil {
		jobID = "unknown"
	}
	logger := s.logger.With().Str("render_id", jobID).Str("key", key).Logger()

	if !req.ForceRefresh {
		// a concurrent winner may have refilled the key while we waited
		if img, ok := s.artifacts.Get(key); ok {
			return img, nil
		}
	}

	var stats *domain.UserActivityStats
	var fonts *assets.Fonts

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.stats.GetStats(gctx, req.Username, req.ForceRefresh)
		return err
	})
	g.Go(func() error {
		f, err := s.assets.Load(gctx)
		if err != nil {
			logger.Warn().Err(err).Msg("asset load failed, rendering with defaults")
			return nil
		}
		fonts = f
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if req.Font == "" && fonts != nil && len(fonts.Families) > 0 {
		req.Font = fonts.Families[0]
	}

	img, err := s.renderer.Render(req, stats)
	if err != nil {
		logger.Error().Err(err).Msg("render failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailure, err)
	}

	s.artifacts.Set(key, img, constants.CardCacheTTL)
	logger.Info().Int("bytes", len(img)).Msg("card rendered and cached")
	return img, nil
}
