package main

import (
	"context"
	"fmt"
	"net/http"

	"github-card/internal/cache"
	"github-card/internal/config"
	"github-card/internal/constants"
	"github-card/internal/domain"
	fxmodules "github-card/internal/fx"
	"github-card/internal/middleware"
	"github-card/internal/server"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	cardServer *server.CardServer,
	cfg *config.Config,
	artifacts *cache.Cache[[]byte],
	statsMemo *cache.Cache[*domain.UserActivityStats],
	logger zerolog.Logger,
) {
	mux := http.NewServeMux()
	cardServer.Register(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	handler := middleware.RequestID(logger)(c.Handler(mux))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: handler,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			artifacts.StartSweeper(constants.CacheSweepInterval)
			statsMemo.StartSweeper(constants.CacheSweepInterval)

			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			artifacts.Stop()
			statsMemo.Stop()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
