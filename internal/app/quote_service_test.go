package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dnmkhamed/hotel-boq/internal/app"
	"github.com/dnmkhamed/hotel-boq/internal/domain"
	"github.com/dnmkhamed/hotel-boq/internal/quote"
)

func newQuoteService(clock *stubClock) *app.QuoteService {
	return app.NewQuoteService(quote.NewCache(quote.DefaultSize, clock), clock)
}

func TestCalculateQuoteStages(t *testing.T) {
	svc := newQuoteService(testClock())

	q, err := svc.CalculateQuote(app.QuoteItem{
		HotelID:    "hotel_1",
		RoomTypeID: "room_1",
		RateID:     "rate_1",
		Checkin:    "2024-01-10",
		Checkout:   "2024-01-12",
		Guests:     2,
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	// Base record: two nights at the flat rate, guests not multiplied in.
	if q.Nights != 2 || q.TotalPrice != 200 {
		t.Fatalf("base record: nights = %d total = %d", q.Nights, q.TotalPrice)
	}
	// Calculator stages price per guest and stack the taxes on top.
	if q.BasePrice != 400 {
		t.Fatalf("base price = %d, want 400", q.BasePrice)
	}
	if q.OccupancyTax != 40 || q.CityTax != 20 || q.TotalTax != 60 {
		t.Fatalf("taxes: %+v", q)
	}
	if q.TotalWithTax != 460 || q.FinalTotal != 460 {
		t.Fatalf("totals: with_tax = %v final = %v", q.TotalWithTax, q.FinalTotal)
	}
	if q.EarlyBookingDiscount != 0 || q.LongStayDiscount != 0 {
		t.Fatalf("unexpected discounts: %+v", q)
	}
	if q.Currency != "USD" {
		t.Fatalf("currency = %q", q.Currency)
	}
}

func TestCalculateQuoteDiscounts(t *testing.T) {
	// Checkin is 60 days out and the stay runs 10 nights, so both
	// discounts apply on top of the taxed total.
	svc := newQuoteService(testClock())

	q, err := svc.CalculateQuote(app.QuoteItem{
		HotelID:    "hotel_1",
		RoomTypeID: "room_1",
		RateID:     "rate_1",
		Checkin:    "2024-03-01",
		Checkout:   "2024-03-11",
		Guests:     1,
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if q.BasePrice != 1000 || q.TotalWithTax != 1150 {
		t.Fatalf("pre-discount: %+v", q)
	}
	if q.EarlyBookingDiscount != 0.05 || q.LongStayDiscount != 0.10 {
		t.Fatalf("discount flags: %+v", q)
	}
	if q.FinalTotal != 983.25 {
		t.Fatalf("final = %v, want 983.25", q.FinalTotal)
	}
}

func TestCalculateQuoteUsesRateHint(t *testing.T) {
	svc := newQuoteService(testClock())

	q, err := svc.CalculateQuote(app.QuoteItem{
		HotelID:    "hotel_1",
		RoomTypeID: "room_1",
		RateID:     "rate_1",
		Checkin:    "2024-01-10",
		Checkout:   "2024-01-12",
		Guests:     1,

		BasePricePerNight: 150,
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if q.BasePrice != 300 {
		t.Fatalf("base price = %d, want 300", q.BasePrice)
	}
}

func TestCalculateQuoteMemoizes(t *testing.T) {
	clock := testClock()
	svc := newQuoteService(clock)
	item := app.QuoteItem{
		HotelID: "hotel_1", RoomTypeID: "room_1", RateID: "rate_1",
		Checkin: "2024-01-10", Checkout: "2024-01-12", Guests: 2,
	}

	first, err := svc.CalculateQuote(item)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	clock.advance(time.Hour)
	second, err := svc.CalculateQuote(item)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !second.CalculatedAt.Equal(first.CalculatedAt) {
		t.Fatalf("expected memoized base record, got %v then %v", first.CalculatedAt, second.CalculatedAt)
	}

	stats := svc.Cache().Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestCalculateBatch(t *testing.T) {
	svc := newQuoteService(testClock())
	items := []app.QuoteItem{
		{HotelID: "hotel_1", RoomTypeID: "room_1", RateID: "rate_1", Checkin: "2024-01-10", Checkout: "2024-01-12", Guests: 2},
		{HotelID: "hotel_2", RoomTypeID: "room_6", RateID: "rate_3", Checkin: "2024-01-10", Checkout: "2024-01-13", Guests: 2},
	}

	quotes, err := svc.CalculateBatch(items)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(quotes) != 2 || quotes[0].Nights != 2 || quotes[1].Nights != 3 {
		t.Fatalf("unexpected batch: %+v", quotes)
	}

	// A malformed item fails the whole sequential batch.
	bad := append(items, app.QuoteItem{HotelID: "hotel_3", Checkin: "2024-01-aa", Checkout: "2024-01-bb", Guests: 1})
	if _, err := svc.CalculateBatch(bad); err == nil {
		t.Fatalf("expected failure")
	}
}

func TestSafeCalculateQuote(t *testing.T) {
	svc := newQuoteService(testClock())

	res := svc.SafeCalculateQuote(app.QuoteItem{Checkin: "2024-01-10", Checkout: "2024-01-12"})
	if got := res.Err().Error(); got != "Number of guests must be positive" {
		t.Fatalf("error = %q", got)
	}

	res = svc.SafeCalculateQuote(app.QuoteItem{Checkin: "2024-01-12", Checkout: "2024-01-10", Guests: 2})
	if got := res.Err().Error(); got != "Checkout date must be after checkin" {
		t.Fatalf("error = %q", got)
	}

	// A failure inside the calculator surfaces as a wrapped computation
	// fault, never as a panic.
	res = svc.SafeCalculateQuote(app.QuoteItem{Checkin: "2024-01-aa", Checkout: "2024-01-bb", Guests: 2})
	if res.IsRight() {
		t.Fatalf("expected failure")
	}
	var ce *domain.ComputationError
	if !errors.As(res.Err(), &ce) {
		t.Fatalf("expected ComputationError, got %T", res.Err())
	}
	want := "Calculation failed: Invalid date format. Use YYYY-MM-DD"
	if got := res.Err().Error(); got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}
