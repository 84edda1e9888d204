package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage/factory"
	"github.com/DjordjeVuckovic/music-hunter/pkg/config/env"
)

// index_schema creates the search index if it is missing and reports how many
// documents it holds.
func main() {
	var (
		envFile       = flag.String("env", "cmd/index_schema/.env", "Path to a .env file")
		relevancePath = flag.String("relevance", "", "Relevance YAML; only validated here")
		timeout       = flag.Duration("timeout", 30*time.Second, "Timeout for the whole run")
	)
	flag.Parse()

	if err := env.LoadDotEnv(os.Getenv("ENV"), *envFile); err != nil {
		log.Printf("Skipping .env: %v", err)
	}

	relevance := query.DefaultRelevance()
	if *relevancePath != "" {
		f, err := os.Open(*relevancePath)
		if err != nil {
			log.Fatalf("Failed to open relevance config: %v", err)
		}
		relevance, err = query.LoadRelevance(f)
		f.Close()
		if err != nil {
			log.Fatalf("Invalid relevance config: %v", err)
		}
	}

	cfg, err := factory.LoadIndexEnv()
	if err != nil {
		log.Fatalf("Failed to load index configuration: %v", err)
	}

	index, err := factory.NewIndex(*cfg, relevance)
	if err != nil {
		log.Fatalf("Failed to create index backend: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := index.Ping(ctx); err != nil {
		log.Fatalf("Index backend unreachable: %v", err)
	}

	if err := index.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	docs, err := index.CountAll(ctx)
	if err != nil {
		log.Fatalf("Failed to count documents: %v", err)
	}

	fmt.Printf("Schema ready (%s): %d documents\n", cfg.String(), docs)
}
