package domain

import "github.com/dnmkhamed/hotel-boq/internal/fp"

// MaxStayNights bounds a single reservation.
const MaxStayNights = 30

// Stay is a validated checkin/checkout pair.
type Stay struct {
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
}

// ValidateDates checks a stay range: both dates well-formed, checkout
// strictly after checkin, and the stay no longer than MaxStayNights.
func ValidateDates(checkin, checkout string) fp.Either[Stay] {
	ci, err := ParseDate(checkin)
	if err != nil {
		return fp.Left[Stay](Invalid("Invalid date format. Use YYYY-MM-DD"))
	}
	co, err := ParseDate(checkout)
	if err != nil {
		return fp.Left[Stay](Invalid("Invalid date format. Use YYYY-MM-DD"))
	}
	if !co.After(ci) {
		return fp.Left[Stay](Invalid("Checkout date must be after checkin date"))
	}
	if int(co.Sub(ci).Hours()/24) > MaxStayNights {
		return fp.Left[Stay](Invalid("Maximum stay is 30 days"))
	}
	return fp.Right(Stay{Checkin: checkin, Checkout: checkout})
}

// ValidateGuests checks the guest count against a room's capacity.
func ValidateGuests(guests, capacity int) fp.Either[int] {
	if guests <= 0 {
		return fp.Left[int](Invalid("Number of guests must be positive"))
	}
	if guests > capacity {
		return fp.Left[int](Invalidf("Room capacity exceeded. Maximum: %d guests", capacity))
	}
	return fp.Right(guests)
}

// maxAssumedCapacity backs the cart-item check when no room record is at
// hand to supply the real capacity.
const maxAssumedCapacity = 4

// ValidateCartItem checks one held item against the availability
// snapshot. An empty snapshot counts as available. Date comparison is
// lexicographic, which matches chronological order for YYYY-MM-DD.
func ValidateCartItem(item CartItem, availability []Availability, rules []Rule) fp.Either[CartItem] {
	if len(availability) > 0 {
		available := false
		for _, a := range availability {
			if a.RoomTypeID == item.RoomTypeID &&
				a.Date >= item.Checkin && a.Date < item.Checkout &&
				a.Available > 0 {
				available = true
				break
			}
		}
		if !available {
			return fp.Left[CartItem](Unavailable("No availability for selected dates"))
		}
	}

	if item.Guests > maxAssumedCapacity {
		return fp.Left[CartItem](Invalid("Guest count exceeds maximum room capacity"))
	}
	return fp.Right(item)
}

// TotalTolerance is the accepted divergence, in currency minor units,
// between a supplied booking total and the recomputed one.
const TotalTolerance = 10

// ValidateBookingTotal recomputes the booking total from its items and
// rejects the booking when the supplied total diverges beyond the
// tolerance.
func ValidateBookingTotal(b Booking, prices []Price) fp.Either[Booking] {
	calculated := 0
	for _, item := range b.Items {
		calculated += item.Guests * 100
	}

	diff := calculated - b.Total
	if diff < 0 {
		diff = -diff
	}
	if diff > TotalTolerance {
		return fp.Left[Booking](&PriceMismatchError{Expected: calculated, Got: b.Total})
	}
	return fp.Right(b)
}

// ValidateBooking runs every item through ValidateCartItem and then
// checks the total, chained so the first failure short-circuits the rest.
func ValidateBooking(b Booking, prices []Price, availability []Availability, rules []Rule) fp.Either[Booking] {
	res := fp.Right(b)
	for _, item := range b.Items {
		it := item
		res = res.Bind(func(bk Booking) fp.Either[Booking] {
			return fp.MapEither(ValidateCartItem(it, availability, rules), func(CartItem) Booking { return bk })
		})
	}
	return res.Bind(func(bk Booking) fp.Either[Booking] {
		return ValidateBookingTotal(bk, prices)
	})
}
