package app

import (
	"fmt"
	"math"
	"time"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
	"github.com/dnmkhamed/hotel-boq/internal/fp"
	"github.com/dnmkhamed/hotel-boq/internal/quote"
)

// Tax and discount parameters applied on top of the memoized base quote.
const (
	occupancyTaxRate = 0.10
	cityTaxRate      = 0.05

	earlyBookingDays     = 30
	earlyBookingDiscount = 0.05
	longStayNights       = 7
	longStayDiscount     = 0.10
)

// QuoteItem is one quote request. Nights and BasePricePerNight are
// optional display hints carried by batch callers; the authoritative
// nights count always comes from the dates.
type QuoteItem struct {
	HotelID           string `json:"hotel_id"`
	RoomTypeID        string `json:"room_type_id"`
	RateID            string `json:"rate_id"`
	Checkin           string `json:"checkin"`
	Checkout          string `json:"checkout"`
	Guests            int    `json:"guests"`
	Nights            int    `json:"nights,omitempty"`
	BasePricePerNight int    `json:"base_price_per_night,omitempty"`
}

// PricedQuote is the fully staged quote: the memoized base record plus
// the price, tax and discount figures added by the calculator stages.
type PricedQuote struct {
	HotelID           string    `json:"hotel_id"`
	RoomTypeID        string    `json:"room_type_id"`
	RateID            string    `json:"rate_id"`
	Checkin           string    `json:"checkin"`
	Checkout          string    `json:"checkout"`
	Guests            int       `json:"guests"`
	Nights            int       `json:"nights"`
	TotalPrice        int       `json:"total_price"`
	CalculatedAt      time.Time `json:"calculated_at"`
	BasePricePerNight int       `json:"base_price_per_night,omitempty"`

	BasePrice    int     `json:"base_price"`
	OccupancyTax float64 `json:"occupancy_tax"`
	CityTax      float64 `json:"city_tax"`
	TotalTax     float64 `json:"total_tax"`
	TotalWithTax float64 `json:"total_with_tax"`

	EarlyBookingDiscount float64 `json:"early_booking_discount,omitempty"`
	LongStayDiscount     float64 `json:"long_stay_discount,omitempty"`

	FinalTotal float64 `json:"final_total"`
	Currency   string  `json:"currency"`
}

// Stage is one typed step of the quote calculator pipeline.
type Stage func(PricedQuote) PricedQuote

// QuoteService prices stays by running the memoized base quote through
// the configured calculator stages.
type QuoteService struct {
	cache  *quote.Cache
	clock  domain.Clock
	stages []Stage
}

func NewQuoteService(cache *quote.Cache, clock domain.Clock) *QuoteService {
	s := &QuoteService{cache: cache, clock: clock}
	s.stages = []Stage{basePriceStage, taxStage, s.discountStage}
	return s
}

// Cache exposes the memo cache for diagnostics and benchmarks.
func (s *QuoteService) Cache() *quote.Cache { return s.cache }

// CalculateQuote computes the memoized base quote for the item and runs
// it through the calculator stages.
func (s *QuoteService) CalculateQuote(item QuoteItem) (PricedQuote, error) {
	rec, err := s.cache.Quote(quote.Key{
		HotelID:    item.HotelID,
		RoomTypeID: item.RoomTypeID,
		RateID:     item.RateID,
		Checkin:    item.Checkin,
		Checkout:   item.Checkout,
		Guests:     item.Guests,
	})
	if err != nil {
		return PricedQuote{}, err
	}

	q := PricedQuote{
		HotelID:           rec.HotelID,
		RoomTypeID:        rec.RoomTypeID,
		RateID:            rec.RateID,
		Checkin:           rec.Checkin,
		Checkout:          rec.Checkout,
		Guests:            rec.Guests,
		Nights:            rec.Nights,
		TotalPrice:        rec.TotalPrice,
		CalculatedAt:      rec.CalculatedAt,
		BasePricePerNight: item.BasePricePerNight,
	}
	for _, stage := range s.stages {
		q = stage(q)
	}
	return q, nil
}

// CalculateBatch prices the items sequentially, stopping at the first
// failure. Concurrent batching with partial success lives on the
// workflow service.
func (s *QuoteService) CalculateBatch(items []QuoteItem) ([]PricedQuote, error) {
	out := make([]PricedQuote, 0, len(items))
	for _, item := range items {
		q, err := s.CalculateQuote(item)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// SafeCalculateQuote validates the item and prices it on the Either
// rail. Validation failures and computation faults both surface as a
// Left; a panic inside the calculator is captured, never propagated.
func (s *QuoteService) SafeCalculateQuote(item QuoteItem) fp.Either[PricedQuote] {
	if item.Guests <= 0 {
		return fp.Left[PricedQuote](domain.Invalid("Number of guests must be positive"))
	}
	if item.Checkout <= item.Checkin {
		return fp.Left[PricedQuote](domain.Invalid("Checkout date must be after checkin"))
	}

	return fp.Try(func() (PricedQuote, error) {
		return s.CalculateQuote(item)
	}).MapError(func(err error) error {
		return domain.Computation(fmt.Errorf("Calculation failed: %w", err))
	})
}

// basePriceStage prices the stay from nights, per-night rate and guest
// count. Items without a per-night hint use the flat default rate.
func basePriceStage(q PricedQuote) PricedQuote {
	perNight := q.BasePricePerNight
	if perNight == 0 {
		perNight = quote.NightlyRate
	}
	q.BasePrice = q.Nights * perNight * q.Guests
	return q
}

// taxStage adds the occupancy and city taxes on the base price.
func taxStage(q PricedQuote) PricedQuote {
	base := float64(q.BasePrice)
	q.OccupancyTax = base * occupancyTaxRate
	q.CityTax = base * cityTaxRate
	q.TotalTax = q.OccupancyTax + q.CityTax
	q.TotalWithTax = base + q.TotalTax
	return q
}

// discountStage applies the early-booking and long-stay discounts and
// settles the final total.
func (s *QuoteService) discountStage(q PricedQuote) PricedQuote {
	total := q.TotalWithTax

	if checkin, err := domain.ParseDate(q.Checkin); err == nil {
		days := int(checkin.Sub(s.clock.Now()).Hours() / 24)
		if days > earlyBookingDays {
			total *= 1 - earlyBookingDiscount
			q.EarlyBookingDiscount = earlyBookingDiscount
		}
	}
	if q.Nights > longStayNights {
		total *= 1 - longStayDiscount
		q.LongStayDiscount = longStayDiscount
	}

	q.FinalTotal = math.Round(total*100) / 100
	q.Currency = quote.Currency
	return q
}
