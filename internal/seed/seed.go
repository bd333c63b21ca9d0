// Package seed loads the initial dataset snapshot from a JSON file and
// carries the built-in fallback used when no seed file is present.
package seed

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
)

var json = jsoniter.ConfigFastest

// Load reads a dataset snapshot from a seed file. Collections absent
// from the file stay empty; records referencing ids the snapshot does
// not carry are rejected.
func Load(path string) (domain.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read seed: %w", err)
	}

	var ds domain.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return domain.Dataset{}, fmt.Errorf("parse seed: %w", err)
	}
	if err := verify(ds); err != nil {
		return domain.Dataset{}, fmt.Errorf("verify seed: %w", err)
	}
	return ds, nil
}

// verify walks every cross-collection reference in the snapshot and
// reports the first dangling one.
func verify(ds domain.Dataset) error {
	for _, r := range ds.RoomTypes {
		if domain.FindHotel(ds.Hotels, r.HotelID).IsNothing() {
			return domain.NotFound("hotel", r.HotelID)
		}
	}
	for _, rp := range ds.RatePlans {
		if domain.FindRoomType(ds.RoomTypes, rp.RoomTypeID).IsNothing() {
			return domain.NotFound("room type", rp.RoomTypeID)
		}
	}
	for _, p := range ds.Prices {
		if domain.FindRatePlan(ds.RatePlans, p.RateID).IsNothing() {
			return domain.NotFound("rate plan", p.RateID)
		}
	}
	for _, a := range ds.Availability {
		if domain.FindRoomType(ds.RoomTypes, a.RoomTypeID).IsNothing() {
			return domain.NotFound("room type", a.RoomTypeID)
		}
	}
	return nil
}
