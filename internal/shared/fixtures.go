package shared

import "homelyhub/internal/domain"

// SeedUsers are the demo accounts inserted by cmd/seed. Hosts come first so
// properties can be spread across them.
var SeedUsers = []domain.User{
	{Name: "Aarav Sharma", Email: "aarav@homelyhub.dev", Phone: "+91-9810012345", Role: domain.RoleHost},
	{Name: "Diya Patel", Email: "diya@homelyhub.dev", Phone: "+91-9820098765", Role: domain.RoleHost},
	{Name: "Kabir Nair", Email: "kabir@homelyhub.dev", Phone: "+91-9830054321", Role: domain.RoleHost},
	{Name: "Meera Iyer", Email: "meera@homelyhub.dev", Role: domain.RoleGuest},
	{Name: "Rohan Gupta", Email: "rohan@homelyhub.dev", Role: domain.RoleGuest},
	{Name: "Admin", Email: "admin@homelyhub.dev", Role: domain.RoleAdmin},
}

// SeedProperties builds the demo listings, spreading them round-robin across
// the given host ids.
func SeedProperties(hostIDs []string) []domain.Property {
	props := []domain.Property{
		{
			Title:       "Sea-facing apartment in Bandra",
			Description: "Bright two bedroom apartment with an uninterrupted view of the Arabian Sea. Five minutes from Bandstand promenade.",
			Location: domain.Location{
				Address:     domain.Address{Street: "12 Hill Road", City: "Mumbai", State: "Maharashtra", Pincode: "400050"},
				Coordinates: &domain.Coordinates{Lat: 19.0596, Lng: 72.8295},
			},
			Price:     5500,
			Amenities: []domain.Amenity{"wifi", "kitchen", "ac", "tv", "balcony"},
			Type:      domain.TypeApartment,
			Bedrooms:  2, Bathrooms: 2, MaxGuests: 4,
			HouseRules: []string{"No smoking indoors", "No parties"},
		},
		{
			Title:       "Heritage villa near Baga beach",
			Description: "Restored Portuguese villa with a private pool and walled garden, ten minutes on foot from Baga.",
			Location: domain.Location{
				Address:     domain.Address{Street: "Saunta Vaddo", City: "Calangute", State: "Goa", Pincode: "403516"},
				Coordinates: &domain.Coordinates{Lat: 15.5523, Lng: 73.7517},
			},
			Price:     12000,
			Amenities: []domain.Amenity{"wifi", "pool", "parking", "bbq", "garden"},
			Type:      domain.TypeVilla,
			Bedrooms:  4, Bathrooms: 3, MaxGuests: 8,
		},
		{
			Title:       "Cedar cottage above Old Manali",
			Description: "Wood-and-stone cottage in an apple orchard with a fireplace and valley views. Best reached by the orchard footpath.",
			Location: domain.Location{
				Address: domain.Address{City: "Manali", State: "Himachal Pradesh", Pincode: "175131"},
			},
			Price:     3200,
			Amenities: []domain.Amenity{"wifi", "fireplace", "breakfast", "parking"},
			Type:      domain.TypeCottage,
			Bedrooms:  2, Bathrooms: 1, MaxGuests: 4,
			CheckInTime: "13:00",
		},
		{
			Title:       "Minimal studio in Indiranagar",
			Description: "Compact studio for the working traveller. Fast wifi, a desk that fits two monitors, and the 100 Feet Road cafes downstairs.",
			Location: domain.Location{
				Address: domain.Address{Street: "80 Feet Road", City: "Bengaluru", State: "Karnataka", Pincode: "560038"},
			},
			Price:     2100,
			Amenities: []domain.Amenity{"wifi", "kitchen", "ac", "washingMachine"},
			Type:      domain.TypeStudio,
			Bedrooms:  1, Bathrooms: 1, MaxGuests: 2,
		},
		{
			Title:       "Backwater farmhouse stay, Kumarakom",
			Description: "Working coconut farm on the Vembanad lake shore. Home-cooked Kerala meals and a canoe at the jetty.",
			Location: domain.Location{
				Address: domain.Address{City: "Kumarakom", State: "Kerala", Pincode: "686563"},
			},
			Price:     4500,
			Amenities: []domain.Amenity{"breakfast", "garden", "parking"},
			Type:      domain.TypeFarmhouse,
			Bedrooms:  3, Bathrooms: 2, MaxGuests: 6,
		},
		{
			Title:       "Haveli room in the Pink City",
			Description: "Frescoed room in a family-run haveli inside the walled city, a short rickshaw ride from Hawa Mahal.",
			Location: domain.Location{
				Address: domain.Address{Street: "Chandpole Bazar", City: "Jaipur", State: "Rajasthan", Pincode: "302001"},
			},
			Price:     2800,
			Amenities: []domain.Amenity{"wifi", "ac", "breakfast", "tv"},
			Type:      domain.TypeHouse,
			Bedrooms:  1, Bathrooms: 1, MaxGuests: 3,
		},
	}
	for i := range props {
		props[i].Host = hostIDs[i%len(hostIDs)]
	}
	return props
}
