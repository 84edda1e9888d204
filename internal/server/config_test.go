package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.Port)
				assert.False(t, cfg.UseHttp2)
				assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
				assert.Equal(t, 20.0, cfg.RateLimitRPS)
				assert.Equal(t, 20, cfg.RateLimitBurst)
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"PORT":             "9090",
				"USE_HTTP2":        "true",
				"CORS_ORIGINS":     "http://a.example, ,http://b.example",
				"RATE_LIMIT_RPS":   "2.5",
				"RATE_LIMIT_BURST": "5",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "9090", cfg.Port)
				assert.True(t, cfg.UseHttp2)
				assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CorsOrigins)
				assert.Equal(t, 2.5, cfg.RateLimitRPS)
				assert.Equal(t, 5, cfg.RateLimitBurst)
			},
		},
		{name: "port not a number", env: map[string]string{"PORT": "http"}, wantErr: true},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}, wantErr: true},
		{name: "bad rps", env: map[string]string{"RATE_LIMIT_RPS": "0"}, wantErr: true},
		{name: "bad burst", env: map[string]string{"RATE_LIMIT_BURST": "many"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"PORT", "USE_HTTP2", "CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := LoadConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
