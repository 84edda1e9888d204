package es

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/music"
	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientConfig_elasticConfig(t *testing.T) {
	tests := []struct {
		name    string
		in      ClientConfig
		wantErr bool
	}{
		{
			name: "api key wins over basic auth",
			in: ClientConfig{
				Addresses: []string{"http://es:9200"},
				IndexName: "music",
				APIKey:    "key",
				Username:  "elastic",
				Password:  "changeme",
			},
		},
		{
			name: "basic auth",
			in: ClientConfig{
				Addresses: []string{"http://es:9200"},
				IndexName: "music",
				Username:  "elastic",
				Password:  "changeme",
			},
		},
		{
			name:    "no addresses",
			in:      ClientConfig{IndexName: "music"},
			wantErr: true,
		},
		{
			name:    "no index",
			in:      ClientConfig{Addresses: []string{"http://es:9200"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.in.elasticConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in.Addresses, cfg.Addresses)
			assert.True(t, cfg.DisableRetry)
			if tt.in.APIKey != "" {
				assert.Equal(t, tt.in.APIKey, cfg.APIKey)
				assert.Empty(t, cfg.Username)
			} else {
				assert.Equal(t, tt.in.Username, cfg.Username)
				assert.Equal(t, tt.in.Password, cfg.Password)
			}
		})
	}
}

func TestBackend_FailedCallIsNotRetried(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"type":"unavailable","reason":"down"},"status":503}`))
	}))
	t.Cleanup(srv.Close)

	b, err := NewBackend(ClientConfig{Addresses: []string{srv.URL}, IndexName: "music"}, query.DefaultRelevance())
	require.NoError(t, err)

	_, err = b.Count(context.Background(), &query.Expression{Text: "help", ItemType: music.ItemSong})
	assert.Error(t, err)
	assert.Equal(t, int32(1), requests.Load())
}
