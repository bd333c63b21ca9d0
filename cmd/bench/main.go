package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/dnmkhamed/hotel-boq/internal/adapters/observability"
	"github.com/dnmkhamed/hotel-boq/internal/quote"
	"github.com/dnmkhamed/hotel-boq/internal/shared"
)

// bench times the quote computation with and without the memo cache and
// prints the speedup. BENCH_ITERATIONS overrides the iteration count.
func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	iterations := 300
	if v := os.Getenv("BENCH_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			iterations = n
		}
	}

	key := quote.Key{
		HotelID:    "hotel_1",
		RoomTypeID: "room_1",
		RateID:     "rate_1",
		Checkin:    "2024-06-01",
		Checkout:   "2024-06-04",
		Guests:     2,
	}

	cache := quote.NewCache(cfg.QuoteCache, shared.SystemClock{})

	log.Info().
		Int("iterations", iterations).
		Int("cache_size", cfg.QuoteCache).
		Msg("benchmark starting")

	result := cache.Benchmark(key, iterations)

	log.Info().
		Int("iterations", result.Iterations).
		Dur("uncached", result.Uncached).
		Dur("cached", result.Cached).
		Float64("speedup", result.Speedup()).
		Msg("benchmark finished")

	stats := cache.Stats()
	log.Info().
		Int64("hits", stats.Hits).
		Int64("misses", stats.Misses).
		Float64("hit_ratio", stats.HitRatio).
		Msg("cache stats")
}
