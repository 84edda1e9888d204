package es

import (
	"errors"

	"github.com/elastic/go-elasticsearch/v8"
)

type ClientConfig struct {
	Addresses []string
	IndexName string
	// APIKey takes precedence over Username/Password when set.
	APIKey   string
	Username string
	Password string
}

func (c ClientConfig) elasticConfig() (elasticsearch.Config, error) {
	if len(c.Addresses) == 0 {
		return elasticsearch.Config{}, errors.New("at least one Elasticsearch address is required")
	}
	if c.IndexName == "" {
		return elasticsearch.Config{}, errors.New("elasticsearch index name is required")
	}

	// Failures surface to the caller after a single attempt.
	cfg := elasticsearch.Config{
		Addresses:    c.Addresses,
		DisableRetry: true,
	}

	switch {
	case c.APIKey != "":
		cfg.APIKey = c.APIKey
	case c.Username != "" && c.Password != "":
		cfg.Username = c.Username
		cfg.Password = c.Password
	}

	return cfg, nil
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg, err := config.elasticConfig()
	if err != nil {
		return nil, err
	}
	return elasticsearch.NewTypedClient(cfg)
}
