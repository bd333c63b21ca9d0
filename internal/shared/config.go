package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	SeedPath    string
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	CacheTTL    time.Duration
	Workers     int
	SearchLimit int
	QuoteCache  int

	PricefeedURL      string
	PricefeedRPS      int
	PricefeedInterval time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		SeedPath:    env("SEED_PATH", "seed.json"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		Workers:     atoi("WORKERS", 8),
		SearchLimit: atoi("SEARCH_LIMIT", 50),
		QuoteCache:  atoi("QUOTE_CACHE_SIZE", 128),

		PricefeedURL:      env("PRICEFEED_URL", ""),
		PricefeedRPS:      atoi("PRICEFEED_RPS", 2),
		PricefeedInterval: time.Duration(atoi("PRICEFEED_INTERVAL_SECONDS", 60)) * time.Second,
	}
	if c.Workers <= 0 {
		log.Warn().Int("workers", c.Workers).Msg("WORKERS must be positive, using 8")
		c.Workers = 8
	}
	if c.PricefeedURL != "" && c.PricefeedRPS <= 0 {
		log.Warn().Int("rps", c.PricefeedRPS).Msg("PRICEFEED_RPS must be positive, using 2")
		c.PricefeedRPS = 2
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
