// Package report builds operational summaries over booking snapshots:
// overview aggregates, revenue, occupancy and cancellations. Builders
// are pure; time windows arrive as YYYY-MM-DD strings and all window
// checks work on the date part of the stored timestamps.
package report

import (
	"fmt"
	"strings"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
)

// defaultAvgPrice stands in for cities with no recorded rate prices.
const defaultAvgPrice = 100

// CityStats summarizes the hotels of one city.
type CityStats struct {
	Hotels   int     `json:"hotels"`
	AvgStars float64 `json:"avg_stars"`
}

// Aggregates is the dataset overview.
type Aggregates struct {
	HotelCount int                  `json:"hotel_count"`
	RoomCount  int                  `json:"room_count"`
	Cities     []string             `json:"cities"`
	CityStats  map[string]CityStats `json:"city_stats"`
	AvgPrices  map[string]float64   `json:"avg_prices"`
}

// HotelAggregates computes the overview counts, per-city stats and the
// average recorded nightly price per city.
func HotelAggregates(ds domain.Dataset) Aggregates {
	agg := Aggregates{
		HotelCount: len(ds.Hotels),
		RoomCount:  len(ds.RoomTypes),
		Cities:     []string{},
		CityStats:  map[string]CityStats{},
		AvgPrices:  map[string]float64{},
	}
	if len(ds.Hotels) == 0 {
		return agg
	}

	agg.Cities = ds.Cities()

	for _, city := range agg.Cities {
		count := 0
		stars := 0
		for _, h := range ds.Hotels {
			if h.City == city {
				count++
				stars += h.Stars
			}
		}
		agg.CityStats[city] = CityStats{
			Hotels:   count,
			AvgStars: float64(stars) / float64(count),
		}
		agg.AvgPrices[city] = cityAvgPrice(ds, city)
	}
	return agg
}

// cityAvgPrice averages the recorded prices of the rates sold in the
// city's rooms, joined hotel to room to rate, falling back to the flat
// default when the city has no recorded prices.
func cityAvgPrice(ds domain.Dataset, city string) float64 {
	cityHotels := make(map[string]struct{})
	for _, h := range ds.Hotels {
		if h.City == city {
			cityHotels[h.ID] = struct{}{}
		}
	}
	cityRooms := make(map[string]struct{})
	for _, r := range ds.RoomTypes {
		if _, ok := cityHotels[r.HotelID]; ok {
			cityRooms[r.ID] = struct{}{}
		}
	}
	cityRates := make(map[string]struct{})
	for _, rp := range ds.RatePlans {
		if _, ok := cityRooms[rp.RoomTypeID]; ok {
			cityRates[rp.ID] = struct{}{}
		}
	}

	sum, n := 0, 0
	for _, p := range ds.Prices {
		if _, ok := cityRates[p.RateID]; ok {
			sum += p.Amount
			n++
		}
	}
	if n == 0 {
		return defaultAvgPrice
	}
	return float64(sum) / float64(n)
}

// Revenue is the payment summary for a period.
type Revenue struct {
	Period              string         `json:"period"`
	TotalRevenue        int            `json:"total_revenue"`
	BookingCount        int            `json:"booking_count"`
	RevenueByHotel      map[string]int `json:"revenue_by_hotel"`
	DailyRevenue        map[string]int `json:"daily_revenue"`
	AverageBookingValue float64        `json:"average_booking_value"`
}

// BuildRevenue sums the payments of the bookings created inside the
// window: totals, per hotel name, per day, and the average booking
// value.
func BuildRevenue(bookings []domain.Booking, payments []domain.Payment, hotels []domain.Hotel, from, to string) Revenue {
	rev := Revenue{
		Period:         periodLabel(from, to),
		RevenueByHotel: map[string]int{},
		DailyRevenue:   map[string]int{},
	}

	periodBookings := bookingsInWindow(bookings, from, to)
	rev.BookingCount = len(periodBookings)

	inPeriod := make(map[string]struct{}, len(periodBookings))
	for _, b := range periodBookings {
		inPeriod[b.ID] = struct{}{}
	}
	var periodPayments []domain.Payment
	for _, p := range payments {
		if _, ok := inPeriod[p.BookingID]; ok {
			periodPayments = append(periodPayments, p)
			rev.TotalRevenue += p.Amount
		}
	}

	for _, h := range hotels {
		hotelBookings := make(map[string]struct{})
		for _, b := range periodBookings {
			for _, item := range b.Items {
				if item.HotelID == h.ID {
					hotelBookings[b.ID] = struct{}{}
					break
				}
			}
		}
		sum := 0
		for _, p := range periodPayments {
			if _, ok := hotelBookings[p.BookingID]; ok {
				sum += p.Amount
			}
		}
		rev.RevenueByHotel[h.Name] = sum
	}

	for _, date := range datesInclusive(from, to) {
		sum := 0
		for _, p := range periodPayments {
			if strings.HasPrefix(p.TS, date) {
				sum += p.Amount
			}
		}
		rev.DailyRevenue[date] = sum
	}

	if len(periodBookings) > 0 {
		rev.AverageBookingValue = float64(rev.TotalRevenue) / float64(len(periodBookings))
	}
	return rev
}

// DayOccupancy is one hotel's room usage on one date.
type DayOccupancy struct {
	BookedRooms   int     `json:"booked_rooms"`
	TotalRooms    int     `json:"total_rooms"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// Occupancy is the per-hotel and overall room usage for a period.
type Occupancy struct {
	Period           string                             `json:"period"`
	OccupancyByHotel map[string]map[string]DayOccupancy `json:"occupancy_by_hotel"`
	OverallOccupancy map[string]float64                 `json:"overall_occupancy"`
	TotalRooms       int                                `json:"total_rooms"`
}

// BuildOccupancy counts booked rooms per hotel per stay date. A booking
// item occupies every date from its checkin up to but excluding its
// checkout. Hotels without rooms are skipped.
func BuildOccupancy(bookings []domain.Booking, hotels []domain.Hotel, rooms []domain.RoomType, from, to string) Occupancy {
	occ := Occupancy{
		Period:           periodLabel(from, to),
		OccupancyByHotel: map[string]map[string]DayOccupancy{},
		OverallOccupancy: map[string]float64{},
		TotalRooms:       len(rooms),
	}

	dates := datesInclusive(from, to)

	for _, h := range hotels {
		totalRooms := 0
		for _, r := range rooms {
			if r.HotelID == h.ID {
				totalRooms++
			}
		}
		if totalRooms == 0 {
			continue
		}

		days := make(map[string]DayOccupancy, len(dates))
		for _, date := range dates {
			booked := bookedRooms(bookings, h.ID, date)
			days[date] = DayOccupancy{
				BookedRooms:   booked,
				TotalRooms:    totalRooms,
				OccupancyRate: float64(booked) / float64(totalRooms) * 100,
			}
		}
		occ.OccupancyByHotel[h.Name] = days
	}

	for _, date := range dates {
		booked := bookedRooms(bookings, "", date)
		rate := 0.0
		if occ.TotalRooms > 0 {
			rate = float64(booked) / float64(occ.TotalRooms) * 100
		}
		occ.OverallOccupancy[date] = rate
	}
	return occ
}

// bookedRooms counts booking items staying over the date, optionally
// restricted to one hotel.
func bookedRooms(bookings []domain.Booking, hotelID, date string) int {
	n := 0
	for _, b := range bookings {
		for _, item := range b.Items {
			if hotelID != "" && item.HotelID != hotelID {
				continue
			}
			if item.Checkin <= date && date < item.Checkout {
				n++
			}
		}
	}
	return n
}

// Cancellations is the cancellation summary for a period.
type Cancellations struct {
	Period              string         `json:"period"`
	TotalBookings       int            `json:"total_bookings"`
	CancelledBookings   int            `json:"cancelled_bookings"`
	CancellationRate    float64        `json:"cancellation_rate"`
	CancellationReasons map[string]int `json:"cancellation_reasons"`
	RevenueLost         int            `json:"revenue_lost"`
}

// BuildCancellations measures cancellations inside the window. Reasons
// map booking ids to the reason recorded at cancellation time; reasons
// mentioning price or schedule get their own buckets, everything else
// counts as other.
func BuildCancellations(bookings []domain.Booking, reasons map[string]string, from, to string) Cancellations {
	out := Cancellations{
		Period:              periodLabel(from, to),
		CancellationReasons: map[string]int{"price": 0, "schedule": 0, "other": 0},
	}

	periodBookings := bookingsInWindow(bookings, from, to)
	out.TotalBookings = len(periodBookings)

	for _, b := range periodBookings {
		if b.Status != domain.StatusCancelled {
			continue
		}
		out.CancelledBookings++
		out.RevenueLost += b.Total

		reason := strings.ToLower(reasons[b.ID])
		switch {
		case strings.Contains(reason, "price"):
			out.CancellationReasons["price"]++
		case strings.Contains(reason, "schedule"):
			out.CancellationReasons["schedule"]++
		default:
			out.CancellationReasons["other"]++
		}
	}

	if out.TotalBookings > 0 {
		out.CancellationRate = float64(out.CancelledBookings) / float64(out.TotalBookings) * 100
	}
	return out
}

func periodLabel(from, to string) string {
	return fmt.Sprintf("%s to %s", from, to)
}

// bookingsInWindow keeps bookings whose creation date falls inside the
// inclusive window, comparing on the date part of the timestamp.
func bookingsInWindow(bookings []domain.Booking, from, to string) []domain.Booking {
	var out []domain.Booking
	for _, b := range bookings {
		date := createdDate(b)
		if date == "" {
			continue
		}
		if from <= date && date <= to {
			out = append(out, b)
		}
	}
	return out
}

func createdDate(b domain.Booking) string {
	if len(b.CreatedAt) < len(domain.DateLayout) {
		return ""
	}
	return b.CreatedAt[:len(domain.DateLayout)]
}

// datesInclusive lists every date of the window, both ends included.
// Malformed bounds produce an empty list.
func datesInclusive(from, to string) []string {
	start, err := domain.ParseDate(from)
	if err != nil {
		return nil
	}
	end, err := domain.ParseDate(to)
	if err != nil {
		return nil
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(domain.DateLayout))
	}
	return dates
}
