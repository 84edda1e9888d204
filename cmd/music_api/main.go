// Package main Music Hunter API
// @title Music Hunter API
// @version 1.0
// @description Full-text search over a music catalog of songs, artists and albums
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@musichunter.dev
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	_ "github.com/DjordjeVuckovic/music-hunter/docs"
	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
	"github.com/DjordjeVuckovic/music-hunter/internal/router"
	"github.com/DjordjeVuckovic/music-hunter/internal/search"
	"github.com/DjordjeVuckovic/music-hunter/internal/server"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage/factory"
	pkgserver "github.com/DjordjeVuckovic/music-hunter/pkg/server"
	"github.com/labstack/echo/v4"
)

const startupTimeout = 30 * time.Second

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}

	slog.SetLogLoggerLevel(cfg.LogLevel)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	index, err := factory.NewIndex(cfg.StorageConfig, cfg.Relevance)
	if err != nil {
		slog.Error("Failed to create index backend", "error", err)
		os.Exit(1)
		return
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), startupTimeout)
	defer cancelStartup()

	catalog, pool, err := factory.NewCatalog(startupCtx, cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create catalog reader", "error", err)
		os.Exit(1)
		return
	}
	defer pool.Close()

	if err := index.EnsureSchema(startupCtx); err != nil {
		slog.Error("Failed to ensure index schema", "error", err)
		os.Exit(1)
		return
	}
	if docs, err := index.CountAll(startupCtx); err != nil {
		slog.Warn("Failed to count indexed documents", "error", err)
	} else {
		slog.Info("Index ready", "storage", cfg.StorageConfig.String(), "documents", docs)
	}

	healthChecker := pkgserver.NewCompositeHealthChecker(
		pkgserver.NewPingHealthChecker(string(cfg.StorageConfig.Type), index),
		pkgserver.NewPingHealthChecker("postgres", pool),
	)

	s := server.New(sCfg, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Music Hunter API is running")
	})

	engine := search.NewEngine(index, catalog, query.NewBuilder())

	searchrouter := router.NewSearchRouter(s.Echo, engine)
	searchrouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
