package report_test

import (
	"testing"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
	"github.com/dnmkhamed/hotel-boq/internal/report"
	"github.com/dnmkhamed/hotel-boq/internal/seed"
)

func TestHotelAggregates(t *testing.T) {
	agg := report.HotelAggregates(seed.Fallback())

	if agg.HotelCount != 10 || agg.RoomCount != 10 {
		t.Fatalf("counts: %+v", agg)
	}
	if len(agg.Cities) != 10 {
		t.Fatalf("cities = %v", agg.Cities)
	}
	miami := agg.CityStats["Miami"]
	if miami.Hotels != 1 || miami.AvgStars != 4 {
		t.Fatalf("miami stats: %+v", miami)
	}
	// No recorded prices anywhere, so every city reports the default.
	for city, avg := range agg.AvgPrices {
		if avg != 100 {
			t.Fatalf("avg price for %s = %v, want 100", city, avg)
		}
	}
}

func TestHotelAggregatesJoinsPricesByCity(t *testing.T) {
	ds := domain.Dataset{
		Hotels: []domain.Hotel{
			{ID: "h1", Name: "Priced", Stars: 4, City: "Lisbon"},
			{ID: "h2", Name: "Unpriced", Stars: 3, City: "Porto"},
		},
		RoomTypes: []domain.RoomType{
			{ID: "r1", HotelID: "h1", Capacity: 2},
			{ID: "r2", HotelID: "h2", Capacity: 2},
		},
		RatePlans: []domain.RatePlan{
			{ID: "rp1", HotelID: "h1", RoomTypeID: "r1"},
			{ID: "rp2", HotelID: "h2", RoomTypeID: "r2"},
		},
		Prices: []domain.Price{
			{ID: "p1", RateID: "rp1", Date: "2024-01-10", Amount: 100, Currency: "USD"},
			{ID: "p2", RateID: "rp1", Date: "2024-01-11", Amount: 200, Currency: "USD"},
		},
	}

	agg := report.HotelAggregates(ds)
	if agg.AvgPrices["Lisbon"] != 150 {
		t.Fatalf("Lisbon avg = %v, want 150", agg.AvgPrices["Lisbon"])
	}
	if agg.AvgPrices["Porto"] != 100 {
		t.Fatalf("Porto avg = %v, want default 100", agg.AvgPrices["Porto"])
	}
}

func TestHotelAggregatesEmpty(t *testing.T) {
	agg := report.HotelAggregates(domain.Dataset{})
	if agg.HotelCount != 0 || len(agg.Cities) != 0 || len(agg.AvgPrices) != 0 {
		t.Fatalf("unexpected aggregates: %+v", agg)
	}
}

func TestBuildRevenue(t *testing.T) {
	ds := seed.Fallback()
	bookings := []domain.Booking{
		{
			ID:        "booking_1",
			Status:    domain.StatusConfirmed,
			CreatedAt: "2024-01-10 09:30:00",
			Items:     []domain.CartItem{{ID: "cart_1", HotelID: "hotel_1", Checkin: "2024-02-01", Checkout: "2024-02-03", Guests: 2}},
			Total:     600,
		},
		{
			ID:        "booking_2",
			Status:    domain.StatusConfirmed,
			CreatedAt: "2024-01-20 11:00:00",
			Items:     []domain.CartItem{{ID: "cart_2", HotelID: "hotel_2", Checkin: "2024-02-01", Checkout: "2024-02-03", Guests: 2}},
			Total:     300,
		},
	}
	payments := []domain.Payment{
		{ID: "pay_1", BookingID: "booking_1", Amount: 600, TS: "2024-01-10 09:31:00"},
		{ID: "pay_2", BookingID: "booking_2", Amount: 300, TS: "2024-01-20 11:01:00"},
	}

	rev := report.BuildRevenue(bookings, payments, ds.Hotels, "2024-01-01", "2024-01-15")

	if rev.Period != "2024-01-01 to 2024-01-15" {
		t.Fatalf("period = %q", rev.Period)
	}
	// booking_2 falls outside the window, payments and all.
	if rev.TotalRevenue != 600 || rev.BookingCount != 1 {
		t.Fatalf("totals: %+v", rev)
	}
	if rev.RevenueByHotel["Grand Plaza Hotel"] != 600 || rev.RevenueByHotel["Seaside Resort"] != 0 {
		t.Fatalf("by hotel: %v", rev.RevenueByHotel)
	}
	if len(rev.RevenueByHotel) != len(ds.Hotels) {
		t.Fatalf("every hotel reports, got %d entries", len(rev.RevenueByHotel))
	}
	if rev.DailyRevenue["2024-01-10"] != 600 || rev.DailyRevenue["2024-01-11"] != 0 {
		t.Fatalf("daily: %v", rev.DailyRevenue)
	}
	if rev.AverageBookingValue != 600 {
		t.Fatalf("avg = %v", rev.AverageBookingValue)
	}
}

func TestBuildRevenueEmptyWindow(t *testing.T) {
	rev := report.BuildRevenue(nil, nil, nil, "2024-01-01", "2024-01-02")
	if rev.TotalRevenue != 0 || rev.BookingCount != 0 || rev.AverageBookingValue != 0 {
		t.Fatalf("unexpected revenue: %+v", rev)
	}
}

func TestBuildOccupancy(t *testing.T) {
	ds := seed.Fallback()
	bookings := []domain.Booking{
		{
			ID:        "booking_1",
			Status:    domain.StatusConfirmed,
			CreatedAt: "2024-01-05 10:00:00",
			Items:     []domain.CartItem{{ID: "cart_1", HotelID: "hotel_1", RoomTypeID: "room_1", Checkin: "2024-01-10", Checkout: "2024-01-12", Guests: 2}},
		},
	}

	occ := report.BuildOccupancy(bookings, ds.Hotels, ds.RoomTypes, "2024-01-10", "2024-01-12")

	if occ.TotalRooms != 10 {
		t.Fatalf("total rooms = %d", occ.TotalRooms)
	}
	// Only the first two hotels carry rooms in the built-in dataset.
	if len(occ.OccupancyByHotel) != 2 {
		t.Fatalf("hotels reported: %v", len(occ.OccupancyByHotel))
	}

	plaza := occ.OccupancyByHotel["Grand Plaza Hotel"]
	if plaza["2024-01-10"].BookedRooms != 1 || plaza["2024-01-10"].TotalRooms != 5 {
		t.Fatalf("day: %+v", plaza["2024-01-10"])
	}
	if plaza["2024-01-10"].OccupancyRate != 20 {
		t.Fatalf("rate = %v", plaza["2024-01-10"].OccupancyRate)
	}
	// Checkout day is not occupied.
	if plaza["2024-01-12"].BookedRooms != 0 {
		t.Fatalf("checkout day occupied: %+v", plaza["2024-01-12"])
	}

	if occ.OverallOccupancy["2024-01-10"] != 10 {
		t.Fatalf("overall = %v", occ.OverallOccupancy["2024-01-10"])
	}
}

func TestBuildCancellations(t *testing.T) {
	bookings := []domain.Booking{
		{ID: "booking_1", Status: domain.StatusCancelled, CreatedAt: "2024-01-05 10:00:00", Total: 600},
		{ID: "booking_2", Status: domain.StatusCancelled, CreatedAt: "2024-01-06 10:00:00", Total: 300},
		{ID: "booking_3", Status: domain.StatusConfirmed, CreatedAt: "2024-01-07 10:00:00", Total: 900},
		{ID: "booking_4", Status: domain.StatusCancelled, CreatedAt: "2024-02-01 10:00:00", Total: 500},
	}
	reasons := map[string]string{
		"booking_1": "Price too high",
	}

	out := report.BuildCancellations(bookings, reasons, "2024-01-01", "2024-01-31")

	if out.TotalBookings != 3 || out.CancelledBookings != 2 {
		t.Fatalf("counts: %+v", out)
	}
	if out.RevenueLost != 900 {
		t.Fatalf("revenue lost = %d", out.RevenueLost)
	}
	if want := float64(2) / float64(3) * 100; out.CancellationRate != want {
		t.Fatalf("rate = %v, want %v", out.CancellationRate, want)
	}
	if out.CancellationReasons["price"] != 1 || out.CancellationReasons["other"] != 1 || out.CancellationReasons["schedule"] != 0 {
		t.Fatalf("reasons: %v", out.CancellationReasons)
	}
}

func TestBuildCancellationsScheduleBucket(t *testing.T) {
	bookings := []domain.Booking{
		{ID: "booking_1", Status: domain.StatusCancelled, CreatedAt: "2024-01-05 10:00:00", Total: 100},
	}
	reasons := map[string]string{"booking_1": "Schedule conflict"}

	out := report.BuildCancellations(bookings, reasons, "2024-01-01", "2024-01-31")
	if out.CancellationReasons["schedule"] != 1 {
		t.Fatalf("reasons: %v", out.CancellationReasons)
	}
}
