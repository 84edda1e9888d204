package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/music-hunter/internal/storage"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage/es"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage/manticore"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage/pg"
	"github.com/DjordjeVuckovic/music-hunter/pkg/utils"
)

const (
	defaultIndexName = "music"
	defaultBackend   = storage.ES
)

type StorageConfig struct {
	storage.Type
	Es        *es.ClientConfig
	Manticore *manticore.Config
	Pg        *pg.PoolConfig
}

// LoadEnv reads the index backend and PostgreSQL settings.
func LoadEnv() (*StorageConfig, error) {
	cfg, err := LoadIndexEnv()
	if err != nil {
		return nil, err
	}

	pgCfg := &pg.PoolConfig{
		ConnStr:  os.Getenv("PG_CONNECTION_STRING"),
		ReadOnly: true,
	}
	if pgCfg.ConnStr == "" {
		slog.Error("PostgreSQL connection string is not set")
		return nil, fmt.Errorf("PostgreSQL connection string is not set")
	}
	if raw := os.Getenv("PG_MAX_CONNS"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid PG_MAX_CONNS value: %s", raw)
		}
		pgCfg.MaxConns = int32(n)
	}
	cfg.Pg = pgCfg

	return cfg, nil
}

// LoadIndexEnv reads only the index backend settings.
func LoadIndexEnv() (*StorageConfig, error) {
	backend := defaultBackend
	if raw := os.Getenv("INDEX_BACKEND"); raw != "" {
		t, err := storage.ParseType(raw)
		if err != nil {
			slog.Error("Invalid INDEX_BACKEND environment variable value", "value", raw)
			return nil, fmt.Errorf(
				"invalid INDEX_BACKEND environment variable value: %s, expected one of %v",
				raw,
				storage.SupportedTypes)
		}
		backend = t
	}

	cfg := &StorageConfig{Type: backend}

	switch backend {
	case storage.ES:
		esCfg := &es.ClientConfig{
			Addresses: utils.SplitAndTrim(os.Getenv("ES_ADDRESSES"), ","),
			IndexName: utils.DefaultIfEmpty(os.Getenv("ES_INDEX_NAME"), defaultIndexName),
			APIKey:    os.Getenv("ES_API_KEY"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if len(esCfg.Addresses) == 0 {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: ES_ADDRESSES is missing")
		}
		cfg.Es = esCfg

	case storage.Manticore:
		mCfg := &manticore.Config{
			URL:   os.Getenv("MANTICORE_URL"),
			Table: utils.DefaultIfEmpty(os.Getenv("MANTICORE_TABLE"), defaultIndexName),
		}
		if mCfg.URL == "" {
			slog.Error("Manticore URL is not set")
			return nil, fmt.Errorf("manticore configuration is incomplete: MANTICORE_URL is missing")
		}
		cfg.Manticore = mCfg
	}

	return cfg, nil
}

func (c *StorageConfig) String() string {
	var sb strings.Builder
	sb.WriteString("backend=" + string(c.Type))
	if c.Es != nil {
		sb.WriteString(" es=" + strings.Join(c.Es.Addresses, ",") + "/" + c.Es.IndexName)
	}
	if c.Manticore != nil {
		sb.WriteString(" manticore=" + c.Manticore.URL + "/" + c.Manticore.Table)
	}
	return sb.String()
}
