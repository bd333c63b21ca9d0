package app

import (
	"sync"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
)

// Store owns the runtime state of the process: the immutable dataset
// snapshot plus the cart, bookings and payments accumulated while
// serving requests. Collections are replaced copy-on-write, never
// mutated, so a snapshot handed out earlier stays valid.
type Store struct {
	mu       sync.RWMutex
	ds       domain.Dataset
	cart     []domain.CartItem
	bookings []domain.Booking
	payments []domain.Payment
}

func NewStore(ds domain.Dataset) *Store {
	return &Store{ds: ds}
}

// Dataset returns the current snapshot. Callers may hold it for the
// duration of a request without further locking.
func (s *Store) Dataset() domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

func (s *Store) Cart() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

// HoldItem appends the item to a fresh copy of the cart and swaps it in.
func (s *Store) HoldItem(item domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = domain.HoldItem(s.cart, item)
}

// RemoveHold drops the cart item with the given id and reports whether
// anything was removed.
func (s *Store) RemoveHold(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.RemoveHold(s.cart, itemID)
	removed := len(next) != len(s.cart)
	s.cart = next
	return removed
}

func (s *Store) AddBooking(b domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings[:len(s.bookings):len(s.bookings)], b)
}

func (s *Store) AddPayment(p domain.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments[:len(s.payments):len(s.payments)], p)
}

// CancelBooking rewrites the booking with the given id to cancelled
// status and returns the updated record. Cancelling twice is a no-op
// that still reports the booking as found.
func (s *Store) CancelBooking(id string) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bookings {
		if b.ID != id {
			continue
		}
		if b.Status != domain.StatusCancelled {
			next := make([]domain.Booking, len(s.bookings))
			copy(next, s.bookings)
			b.Status = domain.StatusCancelled
			next[i] = b
			s.bookings = next
		}
		return b, true
	}
	return domain.Booking{}, false
}

func (s *Store) Bookings() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bookings
}

func (s *Store) Payments() []domain.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payments
}
