package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dnmkhamed/hotel-boq/internal/adapters/observability"
	"github.com/dnmkhamed/hotel-boq/internal/domain"
)

// Event names carried on the bus.
const (
	Search       = "SEARCH"
	Hold         = "HOLD"
	Booked       = "BOOKED"
	Cancelled    = "CANCELLED"
	PriceChanged = "PRICE_CHANGED"
)

// Event is one occurrence on the bus. Payload keys are domain specific
// and opaque to the bus itself.
type Event struct {
	ID      string         `json:"id"`
	TS      time.Time      `json:"ts"`
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload"`
}

// Handler consumes a published event. A returned error is reported and
// isolated; it never aborts the publish.
type Handler func(Event) error

// Filter decides whether a subscription wants a given event.
type Filter func(Event) bool

type subscription struct {
	id      string
	name    string
	handler Handler
	filter  Filter
}

// Bus is a publish/subscribe registry with an event history log and a
// derived-state view maintained by Reduce. Construct one per process
// and hand the same instance to every producer and consumer.
type Bus struct {
	clock domain.Clock
	ids   domain.IDSource
	log   zerolog.Logger

	mu      sync.Mutex
	subs    map[string][]subscription
	history []Event
	state   State
}

func NewBus(clock domain.Clock, ids domain.IDSource, log zerolog.Logger) *Bus {
	return &Bus{
		clock: clock,
		ids:   ids,
		log:   log,
		subs:  make(map[string][]subscription),
	}
}

// Subscribe registers a handler for one event name. A nil filter accepts
// every event of that name. The returned id revokes the subscription.
func (b *Bus) Subscribe(name string, h Handler, filter Filter) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.ids.NewID("sub")
	b.subs[name] = append(b.subs[name], subscription{id: id, name: name, handler: h, filter: filter})
	return id
}

// Unsubscribe removes the subscription with the given id and reports
// whether it existed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for name, subs := range b.subs {
		for i, sub := range subs {
			if sub.id == id {
				b.subs[name] = append(subs[:i:i], subs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Publish appends the event to the history, folds it into the derived
// state, then notifies matching subscribers in registration order.
// History append and state reduction happen as one atomic step, so
// concurrent publishers can never interleave between the two. A
// subscriber fault is logged and counted, never propagated.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	b.history = append(b.history, e)
	b.state = Reduce(b.state, e)
	matched := append([]subscription(nil), b.subs[e.Name]...)
	b.mu.Unlock()

	observability.ObserveEvent(e.Name)

	for _, sub := range matched {
		if sub.filter != nil && !sub.filter(e) {
			continue
		}
		b.notify(sub, e)
	}
}

// Handlers run outside the bus lock so they may publish follow-up
// events without deadlocking.
func (b *Bus) notify(sub subscription, e Event) {
	defer func() {
		if r := recover(); r != nil {
			observability.ObserveSubscriberFault(e.Name)
			b.log.Error().
				Str("subscription", sub.id).
				Str("event", e.Name).
				Interface("panic", r).
				Msg("event subscriber panicked")
		}
	}()

	if err := sub.handler(e); err != nil {
		observability.ObserveSubscriberFault(e.Name)
		b.log.Error().
			Str("subscription", sub.id).
			Str("event", e.Name).
			Err(err).
			Msg("event subscriber failed")
	}
}

// GetState returns a snapshot of the derived state. Reduce rebuilds
// buckets copy-on-write, so the snapshot is stable against later
// publishes.
func (b *Bus) GetState() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// History returns the most recent events, oldest first, optionally
// restricted to one event name. A non-positive limit returns the whole
// (filtered) history.
func (b *Bus) History(limit int, name string) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	events := b.history
	if name != "" {
		filtered := make([]Event, 0, len(events))
		for _, e := range events {
			if e.Name == name {
				filtered = append(filtered, e)
			}
		}
		events = filtered
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return append([]Event(nil), events...)
}

// SubscriberCount reports the number of live subscriptions, for one
// event name or in total when name is empty.
func (b *Bus) SubscriberCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name != "" {
		return len(b.subs[name])
	}
	total := 0
	for _, subs := range b.subs {
		total += len(subs)
	}
	return total
}

func (b *Bus) newEvent(name string, payload map[string]any) Event {
	return Event{
		ID:      b.ids.NewID("evt"),
		TS:      b.clock.Now(),
		Name:    name,
		Payload: payload,
	}
}

// PublishSearch records a search query on the bus.
func (b *Bus) PublishSearch(filters map[string]any) Event {
	e := b.newEvent(Search, filters)
	b.Publish(e)
	return e
}

// PublishHold records a cart hold on the bus.
func (b *Bus) PublishHold(item map[string]any) Event {
	e := b.newEvent(Hold, item)
	b.Publish(e)
	return e
}

// PublishBooked records a confirmed booking on the bus.
func (b *Bus) PublishBooked(booking map[string]any) Event {
	e := b.newEvent(Booked, booking)
	b.Publish(e)
	return e
}

// PublishCancelled records a cancellation on the bus.
func (b *Bus) PublishCancelled(bookingID, reason string) Event {
	e := b.newEvent(Cancelled, map[string]any{"booking_id": bookingID, "reason": reason})
	b.Publish(e)
	return e
}

// PublishPriceChanged records a rate price move, including the change
// as a percentage of the old price. A zero old price reports a zero
// change rather than dividing by it.
func (b *Bus) PublishPriceChanged(rateID string, oldPrice, newPrice int) Event {
	percent := 0.0
	if oldPrice != 0 {
		percent = float64(newPrice-oldPrice) / float64(oldPrice) * 100
	}
	e := b.newEvent(PriceChanged, map[string]any{
		"rate_id":        rateID,
		"old_price":      oldPrice,
		"new_price":      newPrice,
		"change_percent": percent,
	})
	b.Publish(e)
	return e
}
