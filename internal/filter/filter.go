// Package filter provides composable boolean predicates over the domain
// records. Predicates are pure closures; Compose folds any number of them
// into a single AND with left-to-right short-circuit.
package filter

import (
	"strings"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
)

// Predicate reports whether a record passes one criterion.
type Predicate[T any] func(T) bool

// Compose folds predicates into their conjunction, evaluated left to
// right and stopping at the first false. With no predicates the result
// accepts everything.
func Compose[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// ByCity matches hotels in the named city, ignoring case.
func ByCity(name string) Predicate[domain.Hotel] {
	return func(h domain.Hotel) bool {
		return strings.EqualFold(h.City, name)
	}
}

// ByCapacity matches rooms that sleep at least minGuests.
func ByCapacity(minGuests int) Predicate[domain.RoomType] {
	return func(r domain.RoomType) bool {
		return r.Capacity >= minGuests
	}
}

// ByStars matches hotels whose star rating appears in the set.
func ByStars(stars []int) Predicate[domain.Hotel] {
	return func(h domain.Hotel) bool {
		for _, s := range stars {
			if h.Stars == s {
				return true
			}
		}
		return false
	}
}

// ByFeatures matches records carrying every required feature. The
// accessor picks the feature set off the record, so the same builder
// serves hotels and room types.
func ByFeatures[T any](required []string, features func(T) []string) Predicate[T] {
	return func(v T) bool {
		return hasAll(features(v), required)
	}
}

// ByPriceRange matches prices inside [min, max] in the given currency.
func ByPriceRange(min, max int, currency string) Predicate[domain.Price] {
	return func(p domain.Price) bool {
		return p.Amount >= min && p.Amount <= max && p.Currency == currency
	}
}

// HotelFeatures is the feature accessor for ByFeatures over hotels.
func HotelFeatures(h domain.Hotel) []string { return h.Features }

// RoomFeatures is the feature accessor for ByFeatures over room types.
func RoomFeatures(r domain.RoomType) []string { return r.Features }

// Hotels applies the optional search criteria to a hotel snapshot and
// returns the matching subset. With no criteria set, the input snapshot
// comes back as-is.
func Hotels(hotels []domain.Hotel, f domain.SearchFilters) []domain.Hotel {
	var preds []Predicate[domain.Hotel]
	if f.City != nil && *f.City != "" {
		preds = append(preds, ByCity(*f.City))
	}
	if len(f.Features) > 0 {
		preds = append(preds, ByFeatures(f.Features, HotelFeatures))
	}
	if len(f.Stars) > 0 {
		preds = append(preds, ByStars(f.Stars))
	}
	if len(preds) == 0 {
		return hotels
	}

	match := Compose(preds...)
	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if match(h) {
			out = append(out, h)
		}
	}
	return out
}

func hasAll(have, required []string) bool {
	for _, want := range required {
		found := false
		for _, f := range have {
			if f == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
