package app

import (
	"strings"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
	"github.com/dnmkhamed/hotel-boq/internal/fp"
)

// ComposedBooking is the typed record threaded through ComposeBooking.
// Every stage reads the fields filled by the stages before it and adds
// its own, so each stage's contract is checked at compile time.
type ComposedBooking struct {
	Checkin       string  `json:"checkin"`
	Checkout      string  `json:"checkout"`
	Guests        int     `json:"guests"`
	RoomTypeID    string  `json:"room_type_id,omitempty"`
	PricePerNight float64 `json:"price_per_night,omitempty"`

	Available            bool    `json:"available"`
	Nights               int     `json:"nights"`
	TotalPrice           float64 `json:"total_price"`
	EarlyBookingDiscount float64 `json:"early_booking_discount,omitempty"`
	FinalPrice           float64 `json:"final_price"`
	BookingID            string  `json:"booking_id"`
	Status               string  `json:"status"`
	CreatedAt            string  `json:"created_at"`
}

// composeStages chains stages left to right on the railway. A stage
// error or panic becomes the Left of the whole chain and the remaining
// stages never run.
func composeStages[T any](stages ...func(T) (T, error)) func(T) fp.Either[T] {
	return func(v T) fp.Either[T] {
		out := fp.Right(v)
		for _, stage := range stages {
			out = out.Bind(func(x T) fp.Either[T] {
				return fp.Try(func() (T, error) { return stage(x) })
			})
		}
		return out
	}
}

// ComposeBooking runs the staged booking composition: date and guest
// validation, availability, pricing, discounts, then the confirmed
// record. The first failing stage wins.
func (s *BookingService) ComposeBooking(req ComposedBooking) fp.Either[ComposedBooking] {
	pipeline := composeStages(
		validateStayDates,
		validateStayGuests,
		checkStayAvailability,
		priceStay,
		s.discountStay,
		s.confirmStay,
	)
	return pipeline(req)
}

func validateStayDates(b ComposedBooking) (ComposedBooking, error) {
	nights, err := domain.Nights(b.Checkin, b.Checkout)
	if err != nil {
		return b, err
	}
	if nights <= 0 {
		return b, domain.Invalid("Checkout date must be after checkin date")
	}
	if nights > 30 {
		return b, domain.Invalid("Maximum stay is 30 days")
	}
	return b, nil
}

func validateStayGuests(b ComposedBooking) (ComposedBooking, error) {
	if b.Guests <= 0 {
		return b, domain.Invalid("Number of guests must be positive")
	}
	if b.Guests > 10 {
		return b, domain.Invalid("Maximum 10 guests per booking")
	}
	return b, nil
}

// checkStayAvailability knows only the sold-out marker; the cart
// pipeline consults real availability records.
func checkStayAvailability(b ComposedBooking) (ComposedBooking, error) {
	if b.RoomTypeID == "room_sold_out" {
		return b, domain.Unavailable("Room not available for selected dates")
	}
	b.Available = true
	return b, nil
}

func priceStay(b ComposedBooking) (ComposedBooking, error) {
	nights, err := domain.Nights(b.Checkin, b.Checkout)
	if err != nil {
		return b, err
	}
	rate := b.PricePerNight
	if rate == 0 {
		rate = 100
	}
	b.Nights = nights
	b.TotalPrice = float64(nights) * rate * float64(b.Guests)
	return b, nil
}

// discountStay takes 10% off stays booked more than 30 days out.
func (s *BookingService) discountStay(b ComposedBooking) (ComposedBooking, error) {
	total := b.TotalPrice
	checkin, err := domain.ParseDate(b.Checkin)
	if err != nil {
		return b, err
	}
	if int(checkin.Sub(s.clock.Now()).Hours()/24) > 30 {
		total *= 0.9
		b.EarlyBookingDiscount = 0.1
	}
	b.FinalPrice = total
	return b, nil
}

func (s *BookingService) confirmStay(b ComposedBooking) (ComposedBooking, error) {
	b.BookingID = strings.ToUpper(s.ids.NewID("BK"))
	b.Status = domain.StatusConfirmed
	b.CreatedAt = s.clock.Now().Format(domain.TimestampLayout)
	return b, nil
}
