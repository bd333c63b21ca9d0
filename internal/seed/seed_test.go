package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnmkhamed/hotel-boq/internal/domain"
)

func TestLoad(t *testing.T) {
	t.Run("parses full snapshot", func(t *testing.T) {
		raw := `{
			"hotels": [{"id": "hotel_1", "name": "Grand Plaza Hotel", "stars": 5, "city": "New York", "features": ["wifi", "pool"]}],
			"room_types": [{"id": "room_1", "hotel_id": "hotel_1", "name": "Deluxe King", "capacity": 2, "beds": ["king"], "features": ["wifi"]}],
			"rate_plans": [{"id": "rate_1", "hotel_id": "hotel_1", "room_type_id": "room_1", "title": "Standard Rate", "meal": "RO", "refundable": true, "cancel_before_days": 2}],
			"prices": [{"id": "p1", "rate_id": "rate_1", "date": "2024-01-01", "amount": 120, "currency": "USD"}],
			"availability": [{"id": "a1", "room_type_id": "room_1", "date": "2024-01-01", "available": 3}],
			"guests": [{"id": "guest_1", "name": "Alice Johnson", "email": "alice@example.com"}]
		}`
		path := filepath.Join(t.TempDir(), "seed.json")
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

		ds, err := Load(path)
		require.NoError(t, err)

		require.Len(t, ds.Hotels, 1)
		assert.Equal(t, "Grand Plaza Hotel", ds.Hotels[0].Name)
		require.Len(t, ds.RatePlans, 1)
		require.NotNil(t, ds.RatePlans[0].CancelBeforeDays)
		assert.Equal(t, 2, *ds.RatePlans[0].CancelBeforeDays)
		assert.Len(t, ds.Prices, 1)
		assert.Len(t, ds.Availability, 1)
		assert.Len(t, ds.Guests, 1)
		assert.Empty(t, ds.Rules)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("dangling reference", func(t *testing.T) {
		raw := `{
			"hotels": [{"id": "hotel_1", "name": "Grand Plaza Hotel", "stars": 5, "city": "New York"}],
			"room_types": [{"id": "room_1", "hotel_id": "hotel_404", "name": "Deluxe King", "capacity": 2}]
		}`
		path := filepath.Join(t.TempDir(), "seed.json")
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

		_, err := Load(path)
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "hotel", nf.Resource)
		assert.Equal(t, "hotel_404", nf.ID)
	})
}

func TestFallback(t *testing.T) {
	ds := Fallback()

	assert.Len(t, ds.Hotels, 10)
	assert.Len(t, ds.RoomTypes, 10)
	assert.Len(t, ds.RatePlans, 3)
	assert.Empty(t, ds.Prices)
	assert.Empty(t, ds.Availability)

	miami, ok := ds.Hotel("hotel_2").Get()
	require.True(t, ok)
	assert.Equal(t, "Seaside Resort", miami.Name)
	assert.Equal(t, "Miami", miami.City)

	assert.Len(t, ds.HotelRooms("hotel_1"), 5)
	assert.Len(t, ds.HotelRooms("hotel_2"), 5)
	assert.Empty(t, ds.HotelRooms("hotel_3"))
}
