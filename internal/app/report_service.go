package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
	"github.com/dnmkhamed/hotel-boq/internal/events"
	"github.com/dnmkhamed/hotel-boq/internal/report"
)

// ReportService renders reports over the store snapshot and caches them
// behind the Cache port. Bookings and cancellations invalidate every
// cached report, so a TTL only bounds staleness between events.
type ReportService struct {
	store *Store
	bus   *events.Bus
	cache domain.Cache
	ttl   time.Duration

	mu   sync.Mutex
	keys map[string]struct{} // report keys written since the last invalidation
}

func NewReportService(store *Store, bus *events.Bus, cache domain.Cache, ttl time.Duration) *ReportService {
	s := &ReportService{
		store: store,
		bus:   bus,
		cache: cache,
		ttl:   ttl,
		keys:  make(map[string]struct{}),
	}
	bus.Subscribe(events.Booked, s.invalidate, nil)
	bus.Subscribe(events.Cancelled, s.invalidate, nil)
	return s
}

// Overview returns the dataset aggregates.
func (s *ReportService) Overview(ctx context.Context) report.Aggregates {
	key := "report:overview"
	var out report.Aggregates
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out
	}
	out = report.HotelAggregates(s.store.Dataset())
	s.put(ctx, key, out)
	return out
}

// Revenue returns the payment summary for the window.
func (s *ReportService) Revenue(ctx context.Context, from, to string) report.Revenue {
	key := fmt.Sprintf("report:revenue:%s:%s", from, to)
	var out report.Revenue
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out
	}
	ds := s.store.Dataset()
	out = report.BuildRevenue(s.store.Bookings(), s.store.Payments(), ds.Hotels, from, to)
	s.put(ctx, key, out)
	return out
}

// Occupancy returns the room-usage summary for the window.
func (s *ReportService) Occupancy(ctx context.Context, from, to string) report.Occupancy {
	key := fmt.Sprintf("report:occupancy:%s:%s", from, to)
	var out report.Occupancy
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out
	}
	ds := s.store.Dataset()
	out = report.BuildOccupancy(s.store.Bookings(), ds.Hotels, ds.RoomTypes, from, to)
	s.put(ctx, key, out)
	return out
}

// Cancellations returns the cancellation summary for the window, with
// reasons taken from the cancellation events recorded on the bus.
func (s *ReportService) Cancellations(ctx context.Context, from, to string) report.Cancellations {
	key := fmt.Sprintf("report:cancellations:%s:%s", from, to)
	var out report.Cancellations
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out
	}
	out = report.BuildCancellations(s.store.Bookings(), s.cancellationReasons(), from, to)
	s.put(ctx, key, out)
	return out
}

// cancellationReasons extracts booking id to reason from the derived
// cancellation state.
func (s *ReportService) cancellationReasons() map[string]string {
	state := s.bus.GetState()
	reasons := make(map[string]string, len(state.Cancellations))
	for _, c := range state.Cancellations {
		id, _ := c["booking_id"].(string)
		reason, _ := c["reason"].(string)
		if id != "" {
			reasons[id] = reason
		}
	}
	return reasons
}

func (s *ReportService) put(ctx context.Context, key string, v any) {
	_ = s.cache.Set(ctx, key, v, int(s.ttl.Seconds()))
	s.mu.Lock()
	s.keys[key] = struct{}{}
	s.mu.Unlock()
}

// invalidate drops every cached report. Subscribed to BOOKED and
// CANCELLED; runs on the publisher's goroutine, so it only collects the
// keys under the lock and deletes outside it.
func (s *ReportService) invalidate(events.Event) error {
	s.mu.Lock()
	keys := make([]string, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}
	s.keys = make(map[string]struct{})
	s.mu.Unlock()

	for _, key := range keys {
		if err := s.cache.Del(context.Background(), key); err != nil {
			return err
		}
	}
	return nil
}
