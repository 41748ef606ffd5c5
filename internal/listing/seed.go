package listing

import "time"

// Seed returns the built-in listings shown before the first successful
// fetch, so the discover view is never empty against a cold backend.
func Seed(now time.Time) []Listing {
	nextMonth := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location()).UnixMilli()
	sixMonths := time.Date(now.Year(), now.Month()+6, 1, 0, 0, 0, 0, now.Location()).UnixMilli()
	nowMS := now.UnixMilli()

	return []Listing{
		{
			ID: "1",
			Title: "Axis",
			Price: 1200,
			Location: "Near E St & 2nd",
			Neighborhood: "Downtown Davis",
			Coordinates: Coordinates{Lat: 38.5419, Lng: -121.7405},
			Radius: 300,
			Type: TypeApartment,
			ImageURL: "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?q=80&w=2000&auto=format&fit=crop",
			Description: "Steps away from the UC Davis Arboretum. A minimalist haven with natural light and proximity to the vibrant downtown scene.",
			Bedrooms: 2,
			Bathrooms: 1,
			CreatedAt: nowMS - 86400000,
			AvailableFrom: nextMonth,
			AvailableTo: sixMonths,
			Author: Author{Name: "Elena Rossi", Avatar: "https://i.pravatar.cc/150?u=elena"},
		},
		{
			ID: "2",
			Title: "Greystone",
			Price: 1100,
			Location: "Moore Blvd Area",
			Neighborhood: "North Davis",
			Coordinates: Coordinates{Lat: 38.5623, Lng: -121.7389},
			Radius: 400,
			Type: TypeLoft,
			ImageURL: "https://images.unsplash.com/photo-1493663284031-b7e3aefcae8e?q=80&w=2000&auto=format&fit=crop",
			Description: "Modern lines meet suburban quietude. This loft features double-height ceilings and easy access to the greenbelt.",
			Bedrooms: 2,
			Bathrooms: 2,
			CreatedAt: nowMS - 172800000,
			AvailableFrom: nextMonth,
			AvailableTo: sixMonths + 8640000000,
			Author: Author{Name: "Marcus Chen", Avatar: "https://i.pravatar.cc/150?u=marcus"},
		},
		{
			ID: "3",
			Title: "The Green",
			Price: 1250,
			Location: "Olive Dr & Richards",
			Neighborhood: "South Davis",
			Coordinates: Coordinates{Lat: 38.5385, Lng: -121.7345},
			Radius: 250,
			Type: TypeStudio,
			ImageURL: "https://plus.unsplash.com/premium_photo-1676968002512-3eac82b1d847?q=80&w=687&auto=format&fit=crop",
			Description: "A stark, beautiful studio designed for the dedicated academic. Quiet, refined, and perfectly positioned near campus.",
			Bedrooms: 0,
			Bathrooms: 1,
			CreatedAt: nowMS - 259200000,
			AvailableFrom: nowMS,
			AvailableTo: sixMonths,
			Author: Author{Name: "Sarah Miller", Avatar: "https://i.pravatar.cc/150?u=sarah"},
		},
		{
			ID: "4",
			Title: "Tanglewood",
			Price: 1300,
			Location: "Wildhorse Golf Course",
			Neighborhood: "Wildhorse",
			Coordinates: Coordinates{Lat: 38.5750, Lng: -121.7100},
			Radius: 500,
			Type: TypeHouse,
			ImageURL: "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?q=80&w=2000&auto=format&fit=crop",
			Description: "Expansive living on the edge of the city. Unobstructed views of the surrounding valley and uncompromising modern architecture.",
			Bedrooms: 4,
			Bathrooms: 3,
			CreatedAt: nowMS - 345600000,
			AvailableFrom: nowMS,
			AvailableTo: sixMonths,
			Author: Author{Name: "Marcus Chen", Avatar: "https://i.pravatar.cc/150?u=marcus"},
		},
	}
}
