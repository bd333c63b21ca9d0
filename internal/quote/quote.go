// Package quote prices a stay with a pure function and memoizes it in a
// bounded LRU cache keyed by the exact argument tuple.
package quote

import (
	"time"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
)

// NightlyRate is the flat per-night base price.
const NightlyRate = 100

// Currency is the quoting currency.
const Currency = "USD"

// Key is the full argument tuple of a quote. Two calls with equal keys
// are the same computation.
type Key struct {
	HotelID    string `json:"hotel_id"`
	RoomTypeID string `json:"room_type_id"`
	RateID     string `json:"rate_id"`
	Checkin    string `json:"checkin"`
	Checkout   string `json:"checkout"`
	Guests     int    `json:"guests"`
}

// Record is a priced stay. CalculatedAt reflects when the record was
// first computed; cached reads return it unchanged.
type Record struct {
	HotelID      string    `json:"hotel_id"`
	RoomTypeID   string    `json:"room_type_id"`
	RateID       string    `json:"rate_id"`
	Checkin      string    `json:"checkin"`
	Checkout     string    `json:"checkout"`
	Guests       int       `json:"guests"`
	Nights       int       `json:"nights"`
	TotalPrice   int       `json:"total_price"`
	Currency     string    `json:"currency"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// Compute prices the key at the flat nightly rate. Pure given now; the
// only failure is a malformed date.
func Compute(k Key, now time.Time) (Record, error) {
	nights, err := domain.Nights(k.Checkin, k.Checkout)
	if err != nil {
		return Record{}, domain.Invalid("Invalid date format. Use YYYY-MM-DD")
	}

	return Record{
		HotelID:      k.HotelID,
		RoomTypeID:   k.RoomTypeID,
		RateID:       k.RateID,
		Checkin:      k.Checkin,
		Checkout:     k.Checkout,
		Guests:       k.Guests,
		Nights:       nights,
		TotalPrice:   nights * NightlyRate,
		Currency:     Currency,
		CalculatedAt: now,
	}, nil
}
