package listing

// Neighborhoods is the fixed set of areas listings may be posted under.
var Neighborhoods = []string{
	"Downtown Davis",
	"North Davis",
	"South Davis",
	"West Davis",
	"East Davis",
	"Wildhorse",
	"Mace Ranch",
	"Old North Davis",
}

// DefaultMapCenter is where the map starts before a listing is selected.
var DefaultMapCenter = Coordinates{Lat: 38.5449, Lng: -121.7405}

// ValidNeighborhood reports whether name is one of the known areas.
func ValidNeighborhood(name string) bool {
	for _, n := range Neighborhoods {
		if n == name {
			return true
		}
	}
	return false
}
