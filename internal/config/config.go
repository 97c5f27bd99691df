package config

import (
	"os"
	"time"

	"github-card/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	GitHubToken string
	ServerPort  string
	LogLevel    string
	FontDir     string
	StatsTTL    time.Duration
	CardTTL     time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		GitHubToken: getEnv("GITHUB_TOKEN", ""),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FontDir:     getEnv("FONT_DIR", ""),
		StatsTTL:    constants.StatsCacheTTL,
		CardTTL:     constants.CardCacheTTL,
	}

	if cfg.GitHubToken == "" {
		logger.Warn().Msg("GITHUB_TOKEN not set, using unauthenticated API limits")
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("stats_ttl", cfg.StatsTTL).
		Dur("card_ttl", cfg.CardTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
