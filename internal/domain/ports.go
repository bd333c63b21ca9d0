package domain

import (
	"context"
	"time"
)

// Clock supplies timestamps. Injected so pipelines that stamp records
// stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// IDSource mints unique ids carrying a domain prefix, e.g.
// "booking_1a2b3c4d".
type IDSource interface {
	NewID(prefix string) string
}

// Cache is the boundary for derived views that are expensive to rebuild,
// such as reports. Get reports a miss with found == false and nil error.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// RateQuote is one upstream price observation for a rate plan.
type RateQuote struct {
	RateID   string `json:"rate_id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

// PriceFeed fetches the current upstream prices for all known rates.
type PriceFeed interface {
	LatestRates(ctx context.Context) ([]RateQuote, error)
}
