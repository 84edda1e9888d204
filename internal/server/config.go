package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/music-hunter/pkg/utils"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 20.0
	defaultRateLimitBurst = 20
)

type Config struct {
	Port           string
	UseHttp2       bool
	CorsOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadConfig reads the HTTP settings from the environment. Dotenv files are
// loaded by the caller beforehand.
func LoadConfig() (*Config, error) {
	useHttp2 := os.Getenv("USE_HTTP2") == "true"

	port := utils.DefaultIfEmpty(os.Getenv("PORT"), defaultPort)
	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := utils.SplitAndTrim(os.Getenv("CORS_ORIGINS"), ",")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	rps := defaultRateLimitRPS
	if raw := os.Getenv("RATE_LIMIT_RPS"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %q", raw)
		}
		rps = v
	}

	burst := defaultRateLimitBurst
	if raw := os.Getenv("RATE_LIMIT_BURST"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %q", raw)
		}
		burst = v
	}

	return &Config{
		Port:           port,
		UseHttp2:       useHttp2,
		CorsOrigins:    origins,
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
