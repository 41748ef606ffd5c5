package store

import (
	"sort"
	"time"

	"github.com/roostlabs/roost/internal/listing"
)

// Query selects and orders the listings a view renders.
type Query struct {
	View       View
	ProfileTab ProfileTab
	SortBy     SortOption

	// Discover-only availability window, ISO yyyy-mm-dd. Applied only when
	// both ends are set and parseable.
	FilterStartDate string
	FilterEndDate   string

	// Profile context.
	IsFavorite func(id string) bool
	OwnerName  string
}

// Visible computes the derived view: the filtered, sorted listing list a
// page actually renders. It is a pure function of its inputs; the input
// slice is never mutated and sorting is stable, so ties keep their
// original collection order.
func Visible(items []listing.Listing, q Query) []listing.Listing {
	result := make([]listing.Listing, 0, len(items))

	switch {
	case q.View == ViewProfile && q.ProfileTab == TabFavorites:
		for _, l := range items {
			if q.IsFavorite != nil && q.IsFavorite(l.ID) {
				result = append(result, l)
			}
		}
	case q.View == ViewProfile && q.ProfileTab == TabPosts:
		for _, l := range items {
			if l.OwnedBy(q.OwnerName) {
				result = append(result, l)
			}
		}
	default:
		startTS, startOK := ParseFilterDate(q.FilterStartDate)
		endTS, endOK := ParseFilterDate(q.FilterEndDate)
		if startOK && endOK {
			// Keep listings whose availability window fully contains the
			// requested window.
			for _, l := range items {
				if l.AvailableFrom <= startTS && l.AvailableTo >= endTS {
					result = append(result, l)
				}
			}
		} else {
			result = append(result, items...)
		}
	}

	switch q.SortBy {
	case SortPriceLow:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case SortPriceHigh:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	default:
		sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt > result[j].CreatedAt })
	}

	return result
}

// ParseFilterDate converts an ISO yyyy-mm-dd string into a millisecond
// timestamp at UTC midnight.
func ParseFilterDate(date string) (int64, bool) {
	if date == "" {
		return 0, false
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}
