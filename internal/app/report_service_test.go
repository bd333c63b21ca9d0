package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dnmkhamed/hotel-boq/internal/app"
	"github.com/dnmkhamed/hotel-boq/internal/domain"
	"github.com/dnmkhamed/hotel-boq/internal/events"
	"github.com/dnmkhamed/hotel-boq/internal/report"
	"github.com/dnmkhamed/hotel-boq/internal/seed"
)

// fakeReportCache mirrors the Cache port in memory and counts traffic.
type fakeReportCache struct {
	mu    sync.Mutex
	store map[string]any
	sets  int
	dels  int
}

func (c *fakeReportCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *report.Aggregates:
		*d = v.(report.Aggregates)
	case *report.Revenue:
		*d = v.(report.Revenue)
	case *report.Occupancy:
		*d = v.(report.Occupancy)
	case *report.Cancellations:
		*d = v.(report.Cancellations)
	}
	return true, nil
}

func (c *fakeReportCache) Set(_ context.Context, key string, v any, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	c.sets++
	return nil
}

func (c *fakeReportCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels++
	return nil
}

func (c *fakeReportCache) poison(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = v
}

func (c *fakeReportCache) counts() (sets, dels int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets, c.dels
}

func newReportFixture() (*app.ReportService, *app.Store, *events.Bus, *fakeReportCache) {
	store := app.NewStore(seed.Fallback())
	bus := events.NewBus(testClock(), &seqIDs{}, zerolog.Nop())
	cache := &fakeReportCache{}
	svc := app.NewReportService(store, bus, cache, 10*time.Minute)
	return svc, store, bus, cache
}

func TestReportServiceCachesOverview(t *testing.T) {
	svc, _, _, cache := newReportFixture()
	ctx := context.Background()

	first := svc.Overview(ctx)
	if first.HotelCount != 10 {
		t.Fatalf("overview: %+v", first)
	}
	if sets, _ := cache.counts(); sets != 1 {
		t.Fatalf("sets = %d, want 1", sets)
	}

	// Poison the cached entry to prove the second read never recomputes.
	cache.poison("report:overview", report.Aggregates{HotelCount: 999})
	second := svc.Overview(ctx)
	if second.HotelCount != 999 {
		t.Fatalf("expected cached value, got %+v", second)
	}
	if sets, _ := cache.counts(); sets != 1 {
		t.Fatalf("sets = %d, want 1", sets)
	}
}

func TestReportServiceInvalidatesOnBooked(t *testing.T) {
	svc, _, bus, cache := newReportFixture()
	ctx := context.Background()

	svc.Overview(ctx)
	svc.Revenue(ctx, "2024-01-01", "2024-01-31")
	if sets, dels := cache.counts(); sets != 2 || dels != 0 {
		t.Fatalf("sets = %d dels = %d", sets, dels)
	}

	bus.PublishBooked(map[string]any{"booking_id": "booking_1"})
	if _, dels := cache.counts(); dels != 2 {
		t.Fatalf("dels = %d, want 2", dels)
	}

	// The next read rebuilds and re-caches.
	svc.Overview(ctx)
	if sets, _ := cache.counts(); sets != 3 {
		t.Fatalf("sets = %d, want 3", sets)
	}
}

func TestReportServiceInvalidatesOnCancelled(t *testing.T) {
	svc, _, bus, cache := newReportFixture()
	ctx := context.Background()

	svc.Occupancy(ctx, "2024-01-01", "2024-01-07")
	bus.PublishCancelled("booking_1", "Price too high")
	if _, dels := cache.counts(); dels != 1 {
		t.Fatalf("dels = %d, want 1", dels)
	}
}

func TestReportServiceCancellationReasons(t *testing.T) {
	svc, store, bus, _ := newReportFixture()
	ctx := context.Background()

	store.AddBooking(domain.Booking{
		ID:        "booking_1",
		Status:    domain.StatusCancelled,
		CreatedAt: "2024-01-05 10:00:00",
		Total:     600,
	})
	store.AddBooking(domain.Booking{
		ID:        "booking_2",
		Status:    domain.StatusCancelled,
		CreatedAt: "2024-01-06 10:00:00",
		Total:     300,
	})
	bus.PublishCancelled("booking_1", "Price too high")
	bus.PublishCancelled("booking_2", "Schedule conflict")

	out := svc.Cancellations(ctx, "2024-01-01", "2024-01-31")
	if out.CancelledBookings != 2 || out.RevenueLost != 900 {
		t.Fatalf("summary: %+v", out)
	}
	if out.CancellationReasons["price"] != 1 || out.CancellationReasons["schedule"] != 1 {
		t.Fatalf("reasons: %v", out.CancellationReasons)
	}
}

func TestReportServiceRevenueWindow(t *testing.T) {
	svc, store, _, _ := newReportFixture()
	ctx := context.Background()

	store.AddBooking(domain.Booking{
		ID:        "booking_1",
		Status:    domain.StatusConfirmed,
		CreatedAt: "2024-01-10 09:00:00",
		Items:     []domain.CartItem{{ID: "cart_1", HotelID: "hotel_2", Checkin: "2024-02-01", Checkout: "2024-02-03", Guests: 2}},
		Total:     600,
	})
	store.AddPayment(domain.Payment{ID: "pay_1", BookingID: "booking_1", Amount: 600, TS: "2024-01-10 09:01:00"})

	rev := svc.Revenue(ctx, "2024-01-01", "2024-01-15")
	if rev.TotalRevenue != 600 || rev.RevenueByHotel["Seaside Resort"] != 600 {
		t.Fatalf("revenue: %+v", rev)
	}
}
