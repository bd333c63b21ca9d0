package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
	"github.com/dnmkhamed/hotel-boq/internal/seed"
)

func acceptAll(domain.Hotel, domain.RoomType, domain.RatePlan, int) bool { return true }

// The fallback snapshot joins to exactly three offers: rate_1 and rate_2
// on hotel_1/room_1, rate_3 on hotel_2/room_6.
func TestOffersWalksCrossProduct(t *testing.T) {
	ix := NewIndex(seed.Fallback())

	var offers []Offer
	for o := range ix.Offers(acceptAll) {
		offers = append(offers, o)
	}

	require.Len(t, offers, 3)
	assert.Equal(t, "rate_1", offers[0].Rate.ID)
	assert.Equal(t, "rate_2", offers[1].Rate.ID)
	assert.Equal(t, "rate_3", offers[2].Rate.ID)

	for _, o := range offers {
		assert.Equal(t, DefaultNightly, o.PricePerNight, "no recorded prices, default applies")
		assert.False(t, o.Available, "no inventory records means not available")
	}
}

func TestOffersLaziness(t *testing.T) {
	t.Run("early break stops index lookups", func(t *testing.T) {
		ix := NewIndex(seed.Fallback())

		for range ix.Offers(acceptAll) {
			break
		}

		// First offer costs four table reads: rooms of hotel_1, rates of
		// room_1, price and availability of the rate_1 tuple.
		assert.Equal(t, int64(4), ix.Lookups())
	})

	t.Run("full walk touches every table once per step", func(t *testing.T) {
		ix := NewIndex(seed.Fallback())
		for range ix.Offers(acceptAll) {
		}
		assert.Equal(t, int64(26), ix.Lookups())
	})

	t.Run("rejected candidates stop at the predicate", func(t *testing.T) {
		none := func(domain.Hotel, domain.RoomType, domain.RatePlan, int) bool { return false }
		ix := NewIndex(seed.Fallback())

		count := 0
		for range ix.Offers(none) {
			count++
		}
		assert.Zero(t, count)
	})
}

func TestResultsMiamiScenario(t *testing.T) {
	ix := NewIndex(seed.Fallback())

	var results []Result
	for r := range ix.Results(Request{City: "Miami"}) {
		results = append(results, r)
	}

	require.Len(t, results, 1)
	assert.Equal(t, "hotel_2", results[0].Hotel.ID)
	assert.Equal(t, "Seaside Resort", results[0].Hotel.Name)
	assert.Equal(t, "room_6", results[0].Room.ID)
	assert.Equal(t, "rate_3", results[0].Rate.ID)
	assert.Equal(t, 300, results[0].TotalPrice)
}

func TestResultsCriteria(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantIDs []string
	}{
		{name: "unfiltered", req: Request{}, wantIDs: []string{"rate_1", "rate_2", "rate_3"}},
		{name: "min stars", req: Request{MinStars: 5}, wantIDs: []string{"rate_1", "rate_2"}},
		{name: "guests exceed capacities", req: Request{Guests: 3}, wantIDs: []string{}},
		{name: "guests fit", req: Request{Guests: 2}, wantIDs: []string{"rate_1", "rate_2", "rate_3"}},
		{name: "max price below default", req: Request{MaxPrice: 99}, wantIDs: []string{}},
		{name: "max price at default", req: Request{MaxPrice: 100}, wantIDs: []string{"rate_1", "rate_2", "rate_3"}},
		{name: "hotel feature", req: Request{Features: []string{"beach"}}, wantIDs: []string{"rate_3"}},
		{name: "feature split across hotel and room", req: Request{Features: []string{"wifi", "minibar"}}, wantIDs: []string{"rate_1", "rate_2"}},
		{name: "city case-insensitive", req: Request{City: "miami"}, wantIDs: []string{"rate_3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := NewIndex(seed.Fallback())
			ids := []string{}
			for r := range ix.Results(tt.req) {
				ids = append(ids, r.Rate.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestResultsLimit(t *testing.T) {
	full := NewIndex(seed.Fallback())
	for range full.Results(Request{}) {
	}

	limited := NewIndex(seed.Fallback())
	var results []Result
	for r := range limited.Results(Request{Limit: 2}) {
		results = append(results, r)
	}

	assert.Len(t, results, 2)
	assert.Less(t, limited.Lookups(), full.Lookups(),
		"truncated walk must not pay for the remaining cross-product")
}

func TestNightlyPicksFirstRecordedPrice(t *testing.T) {
	ds := seed.Fallback()
	ds.Prices = []domain.Price{
		{ID: "p1", RateID: "rate_1", Date: "2024-01-02", Amount: 150, Currency: "USD"},
		{ID: "p2", RateID: "rate_1", Date: "2024-01-01", Amount: 120, Currency: "USD"},
	}
	ix := NewIndex(ds)

	for o := range ix.Offers(acceptAll) {
		if o.Rate.ID == "rate_1" {
			assert.Equal(t, 150, o.PricePerNight)
		} else {
			assert.Equal(t, DefaultNightly, o.PricePerNight)
		}
	}
}

func TestAvailabilityFlag(t *testing.T) {
	ds := seed.Fallback()
	ds.Availability = []domain.Availability{
		{ID: "a1", RoomTypeID: "room_1", Date: "2024-01-01", Available: 0},
		{ID: "a2", RoomTypeID: "room_6", Date: "2024-01-01", Available: 2},
	}
	ix := NewIndex(ds)

	byRate := map[string]bool{}
	for o := range ix.Offers(acceptAll) {
		byRate[o.Rate.ID] = o.Available
	}

	assert.False(t, byRate["rate_1"], "zero rooms everywhere is unavailable")
	assert.False(t, byRate["rate_2"])
	assert.True(t, byRate["rate_3"], "any positive inventory flips the flag")
}

func TestCalendar(t *testing.T) {
	ds := seed.Fallback()
	ds.Availability = []domain.Availability{
		{ID: "a1", RoomTypeID: "room_1", Date: "2024-01-01", Available: 2},
		{ID: "a2", RoomTypeID: "room_1", Date: "2024-01-02", Available: 0},
		{ID: "a3", RoomTypeID: "room_6", Date: "2024-01-01", Available: 9},
	}
	ix := NewIndex(ds)

	t.Run("one day per night with gaps as zero", func(t *testing.T) {
		var days []CalendarDay
		for d := range ix.Calendar("room_1", "2024-01-01", "2024-01-04") {
			days = append(days, d)
		}

		require.Len(t, days, 3)
		assert.Equal(t, CalendarDay{Date: "2024-01-01", Available: 2, RoomTypeID: "room_1"}, days[0])
		assert.Equal(t, CalendarDay{Date: "2024-01-02", Available: 0, RoomTypeID: "room_1"}, days[1])
		assert.Equal(t, CalendarDay{Date: "2024-01-03", Available: 0, RoomTypeID: "room_1"}, days[2])
	})

	t.Run("malformed range yields nothing", func(t *testing.T) {
		count := 0
		for range ix.Calendar("room_1", "bad", "2024-01-04") {
			count++
		}
		assert.Zero(t, count)
	})
}
