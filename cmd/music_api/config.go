package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/music-hunter/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type MusicAPIConfig struct {
	StorageConfig factory.StorageConfig
	Relevance     query.Relevance
	LogLevel      slog.Level
}

func (as *AppConfig) Load() (*MusicAPIConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/music_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	relevance, err := loadRelevance(os.Getenv("RELEVANCE_CONFIG"))
	if err != nil {
		return nil, err
	}

	level, err := parseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	return &MusicAPIConfig{
		StorageConfig: *storageCfg,
		Relevance:     relevance,
		LogLevel:      level,
	}, nil
}

func loadRelevance(path string) (query.Relevance, error) {
	if path == "" {
		return query.DefaultRelevance(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return query.Relevance{}, fmt.Errorf("failed to open relevance config: %w", err)
	}
	defer f.Close()

	relevance, err := query.LoadRelevance(f)
	if err != nil {
		return query.Relevance{}, fmt.Errorf("invalid relevance config %s: %w", path, err)
	}

	slog.Info("Loaded relevance config", "path", path, "fuzziness", relevance.Fuzziness)
	return relevance, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	if raw == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}
