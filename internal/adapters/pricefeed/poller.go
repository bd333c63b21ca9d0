package pricefeed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
	"github.com/dnmkhamed/hotel-boq/internal/events"
)

// Poller periodically reads the feed and publishes a PRICE_CHANGED
// event for every rate whose price moved since the previous read. The
// first successful read only seeds the baseline.
type Poller struct {
	feed     domain.PriceFeed
	bus      *events.Bus
	log      zerolog.Logger
	interval time.Duration

	last map[string]int
}

func NewPoller(feed domain.PriceFeed, bus *events.Bus, log zerolog.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Poller{feed: feed, bus: bus, log: log, interval: interval}
}

// Run polls immediately and then on every tick until ctx ends.
func (p *Poller) Run(ctx context.Context) {
	t := time.NewTicker(p.interval)
	defer t.Stop()

	p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.Poll(ctx)
		}
	}
}

// Poll reads the feed once. Failures are logged and skipped; the next
// tick tries again with the old baseline intact.
func (p *Poller) Poll(ctx context.Context) {
	quotes, err := p.feed.LatestRates(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("price feed poll failed")
		return
	}

	seeded := p.last != nil
	if p.last == nil {
		p.last = make(map[string]int, len(quotes))
	}

	changes := 0
	for _, q := range quotes {
		old, known := p.last[q.RateID]
		p.last[q.RateID] = q.Amount
		if seeded && known && old != q.Amount {
			p.bus.PublishPriceChanged(q.RateID, old, q.Amount)
			changes++
		}
	}
	p.log.Debug().Int("rates", len(quotes)).Int("changes", changes).Msg("price feed polled")
}
