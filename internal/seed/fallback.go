package seed

import "github.com/dnmkhamed/hotel-boq/internal/domain"

func intp(n int) *int { return &n }

// Fallback returns the built-in ten-hotel dataset used when no seed file
// is available. Hotels one and two carry full room inventories; prices
// and availability are left empty so defaults apply.
func Fallback() domain.Dataset {
	return domain.Dataset{
		Hotels: []domain.Hotel{
			{ID: "hotel_1", Name: "Grand Plaza Hotel", Stars: 5, City: "New York", Features: []string{"wifi", "pool", "spa", "gym"}, Description: "Luxury hotel in Manhattan"},
			{ID: "hotel_2", Name: "Seaside Resort", Stars: 4, City: "Miami", Features: []string{"beach", "pool", "restaurant", "spa"}, Description: "Beachfront resort"},
			{ID: "hotel_3", Name: "Mountain Lodge", Stars: 3, City: "Denver", Features: []string{"wifi", "restaurant", "parking"}, Description: "Cozy mountain lodge"},
			{ID: "hotel_4", Name: "City Center Hotel", Stars: 4, City: "Chicago", Features: []string{"wifi", "gym", "restaurant", "business_center"}, Description: "Modern hotel in downtown"},
			{ID: "hotel_5", Name: "Garden Inn", Stars: 3, City: "San Francisco", Features: []string{"wifi", "breakfast", "garden", "parking"}, Description: "Charming inn with gardens"},
			{ID: "hotel_6", Name: "Royal Palace Hotel", Stars: 5, City: "Las Vegas", Features: []string{"casino", "pool", "spa", "restaurants"}, Description: "Luxury hotel and casino"},
			{ID: "hotel_7", Name: "Harbor View Hotel", Stars: 4, City: "Seattle", Features: []string{"harbor_view", "restaurant", "bar", "concierge"}, Description: "Hotel with waterfront views"},
			{ID: "hotel_8", Name: "Historic Inn", Stars: 3, City: "Boston", Features: []string{"historic", "breakfast", "free_parking", "wifi"}, Description: "Restored historic inn"},
			{ID: "hotel_9", Name: "Business Tower", Stars: 4, City: "Atlanta", Features: []string{"business_center", "gym", "restaurant", "conference_rooms"}, Description: "Modern business hotel"},
			{ID: "hotel_10", Name: "Sunset Resort", Stars: 5, City: "Los Angeles", Features: []string{"pool", "spa", "restaurant", "beach_access"}, Description: "Luxury beach resort"},
		},
		RoomTypes: []domain.RoomType{
			{ID: "room_1", HotelID: "hotel_1", Name: "Deluxe King", Capacity: 2, Beds: []string{"king"}, Features: []string{"wifi", "tv", "ac", "minibar"}, Size: "45 m²"},
			{ID: "room_2", HotelID: "hotel_1", Name: "Executive Suite", Capacity: 3, Beds: []string{"king", "sofa"}, Features: []string{"wifi", "tv", "ac", "minibar", "jacuzzi"}, Size: "65 m²"},
			{ID: "room_3", HotelID: "hotel_1", Name: "Presidential Suite", Capacity: 4, Beds: []string{"king", "queen"}, Features: []string{"wifi", "multiple_tvs", "ac", "minibar", "jacuzzi"}, Size: "120 m²"},
			{ID: "room_4", HotelID: "hotel_1", Name: "Standard Double", Capacity: 2, Beds: []string{"double"}, Features: []string{"wifi", "tv", "ac", "work_desk"}, Size: "35 m²"},
			{ID: "room_5", HotelID: "hotel_1", Name: "Family Room", Capacity: 4, Beds: []string{"queen", "bunk"}, Features: []string{"wifi", "tv", "ac", "minifridge"}, Size: "50 m²"},
			{ID: "room_6", HotelID: "hotel_2", Name: "Ocean View Room", Capacity: 2, Beds: []string{"queen"}, Features: []string{"wifi", "tv", "ac", "balcony", "ocean_view"}, Size: "40 m²"},
			{ID: "room_7", HotelID: "hotel_2", Name: "Beachfront Suite", Capacity: 3, Beds: []string{"king", "sofa"}, Features: []string{"wifi", "tv", "ac", "private_terrace"}, Size: "55 m²"},
			{ID: "room_8", HotelID: "hotel_2", Name: "Garden Room", Capacity: 2, Beds: []string{"double"}, Features: []string{"wifi", "tv", "ac", "garden_view"}, Size: "38 m²"},
			{ID: "room_9", HotelID: "hotel_2", Name: "Pool View Room", Capacity: 2, Beds: []string{"queen"}, Features: []string{"wifi", "tv", "ac", "pool_view"}, Size: "42 m²"},
			{ID: "room_10", HotelID: "hotel_2", Name: "Penthouse Suite", Capacity: 4, Beds: []string{"king", "queen"}, Features: []string{"wifi", "multiple_tvs", "ac", "private_pool"}, Size: "85 m²"},
		},
		RatePlans: []domain.RatePlan{
			{ID: "rate_1", HotelID: "hotel_1", RoomTypeID: "room_1", Title: "Standard Rate", Meal: "RO", Refundable: true, CancelBeforeDays: intp(2), Description: "Flexible rate"},
			{ID: "rate_2", HotelID: "hotel_1", RoomTypeID: "room_1", Title: "Non-refundable", Meal: "RO", Refundable: false, CancelBeforeDays: nil, Description: "Best price"},
			{ID: "rate_3", HotelID: "hotel_2", RoomTypeID: "room_6", Title: "Beach Package", Meal: "BB", Refundable: true, CancelBeforeDays: intp(3), Description: "Includes breakfast"},
		},
	}
}
