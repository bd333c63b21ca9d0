package domain

import "github.com/dnmkhamed/hotel-boq/internal/fp"

// Dataset is one immutable snapshot of the seeded collections. Consumers
// receive it by value and never mutate the backing slices; replacing data
// means building a whole new snapshot.
type Dataset struct {
	Hotels       []Hotel        `json:"hotels"`
	RoomTypes    []RoomType     `json:"room_types"`
	RatePlans    []RatePlan     `json:"rate_plans"`
	Prices       []Price        `json:"prices"`
	Availability []Availability `json:"availability"`
	Guests       []Guest        `json:"guests"`
	Rules        []Rule         `json:"rules"`
}

// FindHotel looks a hotel up by id.
func FindHotel(hotels []Hotel, id string) fp.Maybe[Hotel] {
	for _, h := range hotels {
		if h.ID == id {
			return fp.Just(h)
		}
	}
	return fp.Nothing[Hotel]()
}

// FindRoomType looks a room type up by id.
func FindRoomType(rooms []RoomType, id string) fp.Maybe[RoomType] {
	for _, r := range rooms {
		if r.ID == id {
			return fp.Just(r)
		}
	}
	return fp.Nothing[RoomType]()
}

// FindRatePlan looks a rate plan up by id.
func FindRatePlan(rates []RatePlan, id string) fp.Maybe[RatePlan] {
	for _, r := range rates {
		if r.ID == id {
			return fp.Just(r)
		}
	}
	return fp.Nothing[RatePlan]()
}

func (d Dataset) Hotel(id string) fp.Maybe[Hotel]       { return FindHotel(d.Hotels, id) }
func (d Dataset) RoomType(id string) fp.Maybe[RoomType] { return FindRoomType(d.RoomTypes, id) }
func (d Dataset) RatePlan(id string) fp.Maybe[RatePlan] { return FindRatePlan(d.RatePlans, id) }

// HotelRooms returns the room types belonging to one hotel.
func (d Dataset) HotelRooms(hotelID string) []RoomType {
	var rooms []RoomType
	for _, r := range d.RoomTypes {
		if r.HotelID == hotelID {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// Cities returns the distinct hotel cities in first-occurrence order.
func (d Dataset) Cities() []string {
	seen := make(map[string]struct{}, len(d.Hotels))
	var cities []string
	for _, h := range d.Hotels {
		if _, ok := seen[h.City]; ok {
			continue
		}
		seen[h.City] = struct{}{}
		cities = append(cities, h.City)
	}
	return cities
}

// HoldItem appends an item to the cart, returning a fresh slice. The
// input cart is left untouched.
func HoldItem(cart []CartItem, item CartItem) []CartItem {
	next := make([]CartItem, 0, len(cart)+1)
	next = append(next, cart...)
	return append(next, item)
}

// RemoveHold returns a fresh cart without the item carrying itemID. The
// input cart is left untouched.
func RemoveHold(cart []CartItem, itemID string) []CartItem {
	next := make([]CartItem, 0, len(cart))
	for _, it := range cart {
		if it.ID != itemID {
			next = append(next, it)
		}
	}
	return next
}

// NightlySum totals the per-night prices recorded for a rate across the
// stay. Nights without a recorded price contribute nothing; malformed
// dates yield zero.
func NightlySum(prices []Price, checkin, checkout, rateID string) int {
	dates, err := SplitDateRange(checkin, checkout)
	if err != nil {
		return 0
	}
	stay := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		stay[d] = struct{}{}
	}

	sum := 0
	for _, p := range prices {
		if p.RateID != rateID {
			continue
		}
		if _, ok := stay[p.Date]; ok {
			sum += p.Amount
		}
	}
	return sum
}
