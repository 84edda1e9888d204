package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage/manticore"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage/pg"
)

// NewIndex creates the index backend selected by cfg.Type.
func NewIndex(cfg StorageConfig, relevance query.Relevance) (storage.Index, error) {
	switch cfg.Type {
	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		backend, err := es.NewBackend(*cfg.Es, relevance)
		if err != nil {
			return nil, err
		}
		return backend, nil

	case storage.Manticore:
		if cfg.Manticore == nil {
			return nil, fmt.Errorf("missing Manticore configuration")
		}
		backend, err := manticore.NewBackend(*cfg.Manticore, relevance)
		if err != nil {
			return nil, err
		}
		return backend, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedBackend), cfg.Type)
	}
}

// NewCatalog opens the relational pool and the catalog reading through it.
// The caller owns the returned pool.
func NewCatalog(ctx context.Context, cfg StorageConfig) (*pg.Catalog, *pg.ConnectionPool, error) {
	if cfg.Pg == nil {
		return nil, nil, fmt.Errorf("missing PostgreSQL configuration")
	}

	pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
	}

	return pg.NewCatalog(pool), pool, nil
}
