package fx

import (
	"github-card/internal/assets"
	"github-card/internal/cache"
	"github-card/internal/config"
	"github-card/internal/domain"
	"github-card/internal/github"
	"github-card/internal/logger"
	"github-card/internal/render"
	"github-card/internal/server"
	"github-card/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideStatsMemo(log zerolog.Logger) *cache.Cache[*domain.UserActivityStats] {
	return cache.New[*domain.UserActivityStats](log)
}

func ProvideArtifactCache(log zerolog.Logger) *cache.Cache[[]byte] {
	return cache.New[[]byte](log)
}

func ProvideStatsService(gh *github.Client, memo *cache.Cache[*domain.UserActivityStats], log zerolog.Logger) *service.StatsService {
	return service.NewStatsService(gh, memo, log)
}

func ProvideCardService(
	stats *service.StatsService,
	svg *render.SVG,
	loader *assets.Loader,
	artifacts *cache.Cache[[]byte],
	memo *cache.Cache[*domain.UserActivityStats],
	log zerolog.Logger,
) *service.CardService {
	return service.NewCardService(stats, svg, loader, artifacts, memo, log)
}

func ProvideCardServer(cards *service.CardService, gh *github.Client, log zerolog.Logger) *server.CardServer {
	return server.NewCardServer(cards, gh, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// upstream client
	fx.Provide(github.NewClient),
	// caches
	fx.Provide(ProvideStatsMemo),
	fx.Provide(ProvideArtifactCache),
	// renderer + assets
	fx.Provide(assets.NewLoader),
	fx.Provide(render.NewSVG),
	// svc
	fx.Provide(ProvideStatsService),
	fx.Provide(ProvideCardService),
	// server
	fx.Provide(ProvideCardServer),
)
