// Package search produces hotel offers on demand by walking an indexed
// cross-product of the snapshot collections. Offers are generated one at
// a time, so a consumer that stops early never pays for the remainder of
// the walk.
package search

import (
	"iter"
	"strings"
	"sync/atomic"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
)

// DefaultNightly is the per-night price assumed for rates with no
// recorded price entries.
const DefaultNightly = 100

// displayStayNights is the assumed stay length behind the total_price
// shown on search results. Callers needing an exact total recompute it
// from the real stay through the quote path.
const displayStayNights = 3

// Offer is one joined (hotel, room, rate) candidate with its nightly
// price and availability flag.
type Offer struct {
	Hotel         domain.Hotel    `json:"hotel"`
	Room          domain.RoomType `json:"room_type"`
	Rate          domain.RatePlan `json:"rate"`
	PricePerNight int             `json:"price_per_night"`
	Available     bool            `json:"available"`
}

// Result is an offer dressed for search output, with the display total.
type Result struct {
	Hotel         domain.Hotel    `json:"hotel"`
	Room          domain.RoomType `json:"room_type"`
	Rate          domain.RatePlan `json:"rate"`
	PricePerNight int             `json:"price_per_night"`
	Available     bool            `json:"available"`
	TotalPrice    int             `json:"total_price"`
}

// Request carries the search criteria. Zero values mean "no constraint";
// Limit zero means unbounded.
type Request struct {
	City     string   `json:"city,omitempty"`
	MinStars int      `json:"min_stars,omitempty"`
	Guests   int      `json:"guests,omitempty"`
	MaxPrice int      `json:"max_price,omitempty"`
	Features []string `json:"features,omitempty"`
	Checkin  string   `json:"checkin,omitempty"`
	Checkout string   `json:"checkout,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// Predicate accepts or rejects one joined candidate before it is yielded.
type Predicate func(h domain.Hotel, r domain.RoomType, rate domain.RatePlan, pricePerNight int) bool

// Index holds the one-time lookup tables joining a snapshot: hotel to
// rooms, room to rates, rate to prices, room to availability. Each table
// costs one pass over its collection to build. The index also counts
// table lookups, which makes the generator's laziness observable.
type Index struct {
	hotels       []domain.Hotel
	roomsByHotel map[string][]domain.RoomType
	ratesByRoom  map[string][]domain.RatePlan
	pricesByRate map[string][]domain.Price
	availByRoom  map[string][]domain.Availability

	lookups atomic.Int64
}

// NewIndex builds the lookup tables for one snapshot.
func NewIndex(ds domain.Dataset) *Index {
	ix := &Index{
		hotels:       ds.Hotels,
		roomsByHotel: make(map[string][]domain.RoomType, len(ds.Hotels)),
		ratesByRoom:  make(map[string][]domain.RatePlan, len(ds.RoomTypes)),
		pricesByRate: make(map[string][]domain.Price, len(ds.RatePlans)),
		availByRoom:  make(map[string][]domain.Availability, len(ds.RoomTypes)),
	}
	for _, r := range ds.RoomTypes {
		ix.roomsByHotel[r.HotelID] = append(ix.roomsByHotel[r.HotelID], r)
	}
	for _, rp := range ds.RatePlans {
		ix.ratesByRoom[rp.RoomTypeID] = append(ix.ratesByRoom[rp.RoomTypeID], rp)
	}
	for _, p := range ds.Prices {
		ix.pricesByRate[p.RateID] = append(ix.pricesByRate[p.RateID], p)
	}
	for _, a := range ds.Availability {
		ix.availByRoom[a.RoomTypeID] = append(ix.availByRoom[a.RoomTypeID], a)
	}
	return ix
}

// Lookups reports how many index-table reads the walks over this index
// have performed so far.
func (ix *Index) Lookups() int64 { return ix.lookups.Load() }

func (ix *Index) rooms(hotelID string) []domain.RoomType {
	ix.lookups.Add(1)
	return ix.roomsByHotel[hotelID]
}

func (ix *Index) rates(roomID string) []domain.RatePlan {
	ix.lookups.Add(1)
	return ix.ratesByRoom[roomID]
}

func (ix *Index) nightly(rateID string) int {
	ix.lookups.Add(1)
	if prices := ix.pricesByRate[rateID]; len(prices) > 0 {
		return prices[0].Amount
	}
	return DefaultNightly
}

func (ix *Index) anyAvailable(roomID string) bool {
	ix.lookups.Add(1)
	for _, a := range ix.availByRoom[roomID] {
		if a.Available > 0 {
			return true
		}
	}
	return false
}

// Offers walks hotel, then its rooms, then each room's rates, yielding
// every candidate the predicate accepts. The walk is evaluated per
// candidate: breaking out of the range stops all further lookups. Each
// range over the returned sequence restarts from the first hotel.
func (ix *Index) Offers(pred Predicate) iter.Seq[Offer] {
	return func(yield func(Offer) bool) {
		for _, hotel := range ix.hotels {
			for _, room := range ix.rooms(hotel.ID) {
				for _, rate := range ix.rates(room.ID) {
					price := ix.nightly(rate.ID)
					available := ix.anyAvailable(room.ID)

					if !pred(hotel, room, rate, price) {
						continue
					}
					offer := Offer{
						Hotel:         hotel,
						Room:          room,
						Rate:          rate,
						PricePerNight: price,
						Available:     available,
					}
					if !yield(offer) {
						return
					}
				}
			}
		}
	}
}

// Results wraps Offers with the request's composite criteria and
// truncates after Limit matches.
func (ix *Index) Results(req Request) iter.Seq[Result] {
	pred := requestPredicate(req)
	return func(yield func(Result) bool) {
		count := 0
		for offer := range ix.Offers(pred) {
			if req.Limit > 0 && count >= req.Limit {
				return
			}
			res := Result{
				Hotel:         offer.Hotel,
				Room:          offer.Room,
				Rate:          offer.Rate,
				PricePerNight: offer.PricePerNight,
				Available:     offer.Available,
				TotalPrice:    offer.PricePerNight * displayStayNights,
			}
			if !yield(res) {
				return
			}
			count++
		}
	}
}

func requestPredicate(req Request) Predicate {
	return func(h domain.Hotel, r domain.RoomType, _ domain.RatePlan, price int) bool {
		if req.City != "" && !strings.EqualFold(h.City, req.City) {
			return false
		}
		if req.MinStars > 0 && h.Stars < req.MinStars {
			return false
		}
		if req.Guests > 0 && r.Capacity < req.Guests {
			return false
		}
		if req.MaxPrice > 0 && price > req.MaxPrice {
			return false
		}
		if len(req.Features) > 0 {
			// Required features may be satisfied by the hotel or the room.
			have := make(map[string]struct{}, len(h.Features)+len(r.Features))
			for _, f := range h.Features {
				have[f] = struct{}{}
			}
			for _, f := range r.Features {
				have[f] = struct{}{}
			}
			for _, want := range req.Features {
				if _, ok := have[want]; !ok {
					return false
				}
			}
		}
		return true
	}
}

// CalendarDay is one date of a room's availability calendar.
type CalendarDay struct {
	Date       string `json:"date"`
	Available  int    `json:"available"`
	RoomTypeID string `json:"room_type_id"`
}

// Calendar yields the per-night availability of one room across a date
// range, checkout excluded. Dates with no inventory record yield zero.
func (ix *Index) Calendar(roomTypeID, start, end string) iter.Seq[CalendarDay] {
	return func(yield func(CalendarDay) bool) {
		dates, err := domain.SplitDateRange(start, end)
		if err != nil {
			return
		}
		for _, date := range dates {
			available := 0
			ix.lookups.Add(1)
			for _, a := range ix.availByRoom[roomTypeID] {
				if a.Date == date {
					available = a.Available
					break
				}
			}
			day := CalendarDay{Date: date, Available: available, RoomTypeID: roomTypeID}
			if !yield(day) {
				return
			}
		}
	}
}
