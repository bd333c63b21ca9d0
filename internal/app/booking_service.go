package app

import (
	"fmt"
	"strings"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
	"github.com/dnmkhamed/hotel-boq/internal/fp"
)

// bookingItemNights is the assumed stay length behind the flat per-item
// price used for booking totals.
const bookingItemNights = 3

// bookingData flows through the booking rail, accumulating the total on
// the way to finalization.
type bookingData struct {
	guest        domain.Guest
	items        []domain.CartItem
	prices       []domain.Price
	availability []domain.Availability
	rules        []domain.Rule
	total        int
}

// Hold is a priced, not yet confirmed reservation of cart items.
type Hold struct {
	HoldID    string            `json:"hold_id"`
	Guest     domain.Guest      `json:"guest"`
	Items     []domain.CartItem `json:"items"`
	Total     int               `json:"total"`
	Status    string            `json:"status"`
	CreatedAt string            `json:"created_at"`
}

// BookingService confirms and holds bookings through railway pipelines:
// each step either passes the data on or short-circuits with the first
// failure.
type BookingService struct {
	clock domain.Clock
	ids   domain.IDSource
}

func NewBookingService(clock domain.Clock, ids domain.IDSource) *BookingService {
	return &BookingService{clock: clock, ids: ids}
}

// CreateBooking validates the guest and the items, prices the stay and
// finalizes a confirmed booking. The first failing step wins.
func (s *BookingService) CreateBooking(
	guest domain.Guest,
	items []domain.CartItem,
	prices []domain.Price,
	availability []domain.Availability,
	rules []domain.Rule,
) fp.Either[domain.Booking] {
	data := fp.Right(bookingData{
		guest:        guest,
		items:        items,
		prices:       prices,
		availability: availability,
		rules:        rules,
	})
	data = data.Bind(validateGuest)
	data = data.Bind(validateItemAvailability)
	data = data.Bind(calculateTotals)
	return fp.MapEither(data, s.finalize)
}

// HoldBooking validates the items and prices them into a held
// reservation without confirming anything.
func (s *BookingService) HoldBooking(
	guest domain.Guest,
	items []domain.CartItem,
	prices []domain.Price,
	availability []domain.Availability,
) fp.Either[Hold] {
	hold := Hold{
		HoldID:    s.ids.NewID("hold"),
		Guest:     guest,
		Items:     items,
		Status:    domain.StatusPending,
		CreatedAt: s.clock.Now().Format("2006-01-02T15:04:05"),
	}

	for _, item := range items {
		if validated := domain.ValidateCartItem(item, availability, nil); validated.IsLeft() {
			return fp.Left[Hold](fmt.Errorf("Item validation failed: %w", validated.Err()))
		}
	}

	totals := fp.Try(func() (int, error) {
		total := 0
		for _, item := range items {
			total += itemPrice(item, prices)
		}
		return total, nil
	}).MapError(func(err error) error {
		return domain.Computation(fmt.Errorf("Calculation failed: %w", err))
	})

	return fp.MapEither(totals, func(total int) Hold {
		hold.Total = total
		hold.Status = domain.StatusHeld
		return hold
	})
}

func validateGuest(d bookingData) fp.Either[bookingData] {
	if d.guest.Name == "" {
		return fp.Left[bookingData](domain.Invalid("Guest name is required"))
	}
	if d.guest.Email == "" {
		return fp.Left[bookingData](domain.Invalid("Guest email is required"))
	}
	if !strings.Contains(d.guest.Email, "@") {
		return fp.Left[bookingData](domain.Invalid("Invalid email format"))
	}
	return fp.Right(d)
}

func validateItemAvailability(d bookingData) fp.Either[bookingData] {
	for _, item := range d.items {
		if strings.HasPrefix(item.RoomTypeID, "sold_out") {
			return fp.Left[bookingData](domain.Unavailable(fmt.Sprintf("Room %s is not available", item.RoomTypeID)))
		}
	}
	return fp.Right(d)
}

func calculateTotals(d bookingData) fp.Either[bookingData] {
	total := 0
	for _, item := range d.items {
		total += itemPrice(item, d.prices)
	}
	d.total = total
	return fp.Right(d)
}

// itemPrice is the flat per-item price: guests at the default nightly
// rate over the assumed stay. Recorded prices refine this through the
// quote pipeline, not here.
func itemPrice(item domain.CartItem, _ []domain.Price) int {
	return item.Guests * 100 * bookingItemNights
}

func (s *BookingService) finalize(d bookingData) domain.Booking {
	return domain.Booking{
		ID:        s.ids.NewID("booking"),
		GuestID:   d.guest.ID,
		Items:     d.items,
		Total:     d.total,
		Status:    domain.StatusConfirmed,
		CreatedAt: s.clock.Now().Format(domain.TimestampLayout),
	}
}
