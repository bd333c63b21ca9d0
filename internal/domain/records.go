// Package domain holds the immutable value model for the booking kernel:
// plain records related by string ids, plus the pure helpers that operate
// on snapshots of them. Records carry no behavior; mutation means building
// a new collection.
package domain

// Calendar dates travel as YYYY-MM-DD strings throughout the model.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Booking lifecycle states.
const (
	StatusPending   = "pending"
	StatusHeld      = "held"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Hotel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Stars       int      `json:"stars"`
	City        string   `json:"city"`
	Features    []string `json:"features"`
	Description string   `json:"description,omitempty"`
}

type RoomType struct {
	ID       string   `json:"id"`
	HotelID  string   `json:"hotel_id"`
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	Beds     []string `json:"beds"`
	Features []string `json:"features"`
	Size     string   `json:"size,omitempty"`
}

type RatePlan struct {
	ID               string `json:"id"`
	HotelID          string `json:"hotel_id"`
	RoomTypeID       string `json:"room_type_id"`
	Title            string `json:"title"`
	Meal             string `json:"meal"`
	Refundable       bool   `json:"refundable"`
	CancelBeforeDays *int   `json:"cancel_before_days"`
	Description      string `json:"description,omitempty"`
}

type Price struct {
	ID       string `json:"id"`
	RateID   string `json:"rate_id"`
	Date     string `json:"date"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

type Availability struct {
	ID         string `json:"id"`
	RoomTypeID string `json:"room_type_id"`
	Date       string `json:"date"`
	Available  int    `json:"available"`
}

type Guest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CartItem is one held room selection. Checkin is always strictly before
// checkout for items produced by the validators.
type CartItem struct {
	ID         string `json:"id"`
	HotelID    string `json:"hotel_id"`
	RoomTypeID string `json:"room_type_id"`
	RateID     string `json:"rate_id"`
	Checkin    string `json:"checkin"`
	Checkout   string `json:"checkout"`
	Guests     int    `json:"guests"`
}

type Booking struct {
	ID        string     `json:"id"`
	GuestID   string     `json:"guest_id"`
	Items     []CartItem `json:"items"`
	Total     int        `json:"total"`
	Status    string     `json:"status"`
	CreatedAt string     `json:"created_at,omitempty"`
}

type Payment struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	Amount    int    `json:"amount"`
	TS        string `json:"ts"`
	Method    string `json:"method"`
}

// Rule is a pricing or policy adjustment applied to rate plans before
// quoting, e.g. meal-plan inheritance.
type Rule struct {
	ID      string         `json:"id"`
	Kind    string         `json:"kind"`
	Payload map[string]any `json:"payload"`
}

// SearchFilters carries the optional search criteria. Nil pointers and
// empty slices mean "no constraint".
type SearchFilters struct {
	City     *string  `json:"city,omitempty"`
	Checkin  *string  `json:"checkin,omitempty"`
	Checkout *string  `json:"checkout,omitempty"`
	Guests   *int     `json:"guests,omitempty"`
	MinPrice *int     `json:"min_price,omitempty"`
	MaxPrice *int     `json:"max_price,omitempty"`
	Features []string `json:"features,omitempty"`
	Stars    []int    `json:"stars,omitempty"`
}
