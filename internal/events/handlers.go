package events

import "github.com/rs/zerolog"

// AttachAnalytics registers the standing operational subscribers:
// search analytics, the booking dashboard feed, price alerts and the
// availability cache refresh signal. They only observe; none of them
// can fail a publish.
func AttachAnalytics(b *Bus, log zerolog.Logger) {
	b.Subscribe(Search, func(e Event) error {
		log.Info().Interface("filters", e.Payload).Msg("search analytics updated")
		return nil
	}, nil)

	dashboard := func(e Event) error {
		log.Info().Str("event", e.Name).Interface("payload", e.Payload).Msg("booking dashboard updated")
		return nil
	}
	b.Subscribe(Hold, dashboard, nil)
	b.Subscribe(Booked, dashboard, nil)
	b.Subscribe(Cancelled, dashboard, nil)

	b.Subscribe(PriceChanged, func(e Event) error {
		log.Warn().Interface("change", e.Payload).Msg("price alert")
		return nil
	}, nil)

	refresh := func(e Event) error {
		log.Info().Str("event", e.Name).Interface("payload", e.Payload).Msg("availability view refreshed")
		return nil
	}
	b.Subscribe(Booked, refresh, nil)
	b.Subscribe(Cancelled, refresh, nil)
}
