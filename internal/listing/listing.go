package listing

import (
	"fmt"
	"strconv"
	"strings"
)

// PropertyType enumerates the rental categories the marketplace knows about.
type PropertyType string

const (
	TypeApartment PropertyType = "Apartment"
	TypeHouse     PropertyType = "House"
	TypeStudio    PropertyType = "Studio"
	TypeLoft      PropertyType = "Loft"
)

// PropertyTypes lists every valid property type in display order.
var PropertyTypes = []PropertyType{TypeApartment, TypeHouse, TypeStudio, TypeLoft}

// Coordinates is a lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Author is a denormalized snapshot of the posting user. It is not a live
// reference; authorship checks compare display names (see Listing.OwnedBy).
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Listing is a rental property posting. Timestamps are milliseconds since
// the Unix epoch, matching the broker wire format.
type Listing struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Price            int          `json:"price"`
	Location         string       `json:"location,omitempty"`
	Neighborhood     string       `json:"neighborhood"`
	Coordinates      Coordinates  `json:"coordinates"`
	Radius           int          `json:"radius"`
	Type             PropertyType `json:"type"`
	ImageURL         string       `json:"imageUrl"`
	AdditionalImages []string     `json:"additionalImages,omitempty"`
	Description      string       `json:"description"`
	Bedrooms         int          `json:"bedrooms"`
	Bathrooms        int          `json:"bathrooms"`
	CreatedAt        int64        `json:"createdAt"`
	AvailableFrom    int64        `json:"availableFrom"`
	AvailableTo      int64        `json:"availableTo"`
	Author           Author       `json:"author"`
}

// Validate reports whether the listing satisfies its structural invariants.
func (l Listing) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("listing title is required")
	}
	if l.Price < 0 {
		return fmt.Errorf("price must be non-negative, got %d", l.Price)
	}
	if l.Bedrooms < 0 || l.Bathrooms < 0 {
		return fmt.Errorf("bedrooms and bathrooms must be non-negative")
	}
	if l.AvailableFrom > l.AvailableTo {
		return fmt.Errorf("availableFrom %d is after availableTo %d", l.AvailableFrom, l.AvailableTo)
	}
	return nil
}

// NumericID returns the listing ID as a broker post ID. Client-generated
// fallback IDs are not numeric and report ok=false; they stay local-only.
func (l Listing) NumericID() (int64, bool) {
	return parseNumericID(l.ID)
}

// OwnedBy reports whether the listing belongs to the given display name.
// Matching by display name rather than a stable user ID mirrors the broker's
// authorship model and is a known limitation: identically named users collide.
func (l Listing) OwnedBy(displayName string) bool {
	return l.Author.Name != "" && l.Author.Name == displayName
}

// User is the authenticated account. ID is empty until resolved server-side.
type User struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
}

// DisplayName returns the name shown in the UI and stamped on listings.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns up to two uppercase letters for the avatar placeholder.
func (u User) Initials() string {
	var b strings.Builder
	if u.FirstName != "" {
		b.WriteString(strings.ToUpper(u.FirstName[:1]))
	}
	if u.LastName != "" {
		b.WriteString(strings.ToUpper(u.LastName[:1]))
	}
	return b.String()
}

// NumericID returns the user ID as the broker's integer form.
func (u User) NumericID() (int64, bool) {
	return parseNumericID(u.ID)
}

func parseNumericID(id string) (int64, bool) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
