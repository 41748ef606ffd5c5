package store

import (
	"testing"
	"time"

	"github.com/roostlabs/roost/internal/listing"
)

func day(date string) int64 {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return t.UnixMilli()
}

func ids(items []listing.Listing) []string {
	out := make([]string, 0, len(items))
	for _, l := range items {
		out = append(out, l.ID)
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestVisibleSortOrders(t *testing.T) {
	t.Parallel()
	items := []listing.Listing{
		{ID: "1", Price: 100, CreatedAt: 1000},
		{ID: "2", Price: 200, CreatedAt: 2000},
	}

	tests := []struct {
		name string
		sort SortOption
		want []string
	}{
		{"newest first", SortNewest, []string{"2", "1"}},
		{"price ascending", SortPriceLow, []string{"1", "2"}},
		{"price descending", SortPriceHigh, []string{"2", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Visible(items, Query{View: ViewDiscover, SortBy: tt.sort}))
			if !equalIDs(got, tt.want...) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleSortIsStable(t *testing.T) {
	t.Parallel()
	// Equal prices keep collection order under a price sort.
	items := []listing.Listing{
		{ID: "a", Price: 100, CreatedAt: 1},
		{ID: "b", Price: 100, CreatedAt: 2},
		{ID: "c", Price: 100, CreatedAt: 3},
	}

	got := ids(Visible(items, Query{View: ViewDiscover, SortBy: SortPriceLow}))
	if !equalIDs(got, "a", "b", "c") {
		t.Errorf("order = %v, want stable [a b c]", got)
	}
}

func TestVisibleInputNeverMutated(t *testing.T) {
	t.Parallel()
	items := []listing.Listing{
		{ID: "1", CreatedAt: 1000},
		{ID: "2", CreatedAt: 2000},
	}

	Visible(items, Query{View: ViewDiscover, SortBy: SortNewest})

	if items[0].ID != "1" || items[1].ID != "2" {
		t.Fatalf("input slice reordered: %v", ids(items))
	}
}

func TestVisibleDateWindow(t *testing.T) {
	t.Parallel()
	items := []listing.Listing{
		{ID: "contains", AvailableFrom: day("2026-01-01"), AvailableTo: day("2026-12-31")},
		{ID: "exact", AvailableFrom: day("2026-03-01"), AvailableTo: day("2026-06-01")},
		{ID: "starts-late", AvailableFrom: day("2026-04-01"), AvailableTo: day("2026-12-31")},
		{ID: "ends-early", AvailableFrom: day("2026-01-01"), AvailableTo: day("2026-05-01")},
	}

	q := Query{
		View:            ViewDiscover,
		FilterStartDate: "2026-03-01",
		FilterEndDate:   "2026-06-01",
	}
	got := ids(Visible(items, q))

	// Only listings whose availability fully contains the window survive.
	if !equalIDs(got, "contains", "exact") {
		t.Fatalf("filtered = %v, want [contains exact]", got)
	}
}

func TestVisibleDateWindowNeedsBothEnds(t *testing.T) {
	t.Parallel()
	items := []listing.Listing{
		{ID: "1", AvailableFrom: day("2026-06-01"), AvailableTo: day("2026-07-01")},
	}

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"start only", "2026-01-01", ""},
		{"end only", "", "2026-12-31"},
		{"unparseable start", "junk", "2026-12-31"},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Query{View: ViewDiscover, FilterStartDate: tt.start, FilterEndDate: tt.end}
			if got := Visible(items, q); len(got) != 1 {
				t.Errorf("incomplete window must not filter, got %v", ids(got))
			}
		})
	}
}

func TestVisibleProfileFavorites(t *testing.T) {
	t.Parallel()
	items := []listing.Listing{
		{ID: "1", CreatedAt: 1},
		{ID: "2", CreatedAt: 2},
		{ID: "3", CreatedAt: 3},
	}
	favs := map[string]bool{"1": true, "3": true}

	q := Query{
		View:       ViewProfile,
		ProfileTab: TabFavorites,
		IsFavorite: func(id string) bool { return favs[id] },
	}
	got := ids(Visible(items, q))

	if !equalIDs(got, "3", "1") {
		t.Fatalf("favorites tab = %v, want [3 1] (newest first)", got)
	}
}

func TestVisibleProfilePosts(t *testing.T) {
	t.Parallel()
	items := []listing.Listing{
		{ID: "1", Author: listing.Author{Name: "Ada Lovelace"}},
		{ID: "2", Author: listing.Author{Name: "Grace Hopper"}},
		{ID: "3", Author: listing.Author{Name: "Ada Lovelace"}},
	}

	q := Query{View: ViewProfile, ProfileTab: TabPosts, OwnerName: "Ada Lovelace"}
	got := ids(Visible(items, q))
	if !equalIDs(got, "1", "3") {
		t.Fatalf("posts tab = %v, want [1 3]", got)
	}

	// An anonymous owner matches nothing, even listings with no author.
	q.OwnerName = ""
	withAnon := append(items, listing.Listing{ID: "4"})
	if got := Visible(withAnon, q); len(got) != 0 {
		t.Fatalf("empty owner matched %v", ids(got))
	}
}

func TestVisibleDiscoverIgnoresProfileContext(t *testing.T) {
	t.Parallel()
	items := []listing.Listing{{ID: "1"}, {ID: "2"}}

	q := Query{
		View:       ViewDiscover,
		ProfileTab: TabFavorites,
		IsFavorite: func(string) bool { return false },
	}
	if got := Visible(items, q); len(got) != 2 {
		t.Fatalf("discover filtered by favorites: %v", ids(got))
	}
}

func TestParseFilterDate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		wantOK bool
	}{
		{"2026-03-01", true},
		{"", false},
		{"03/01/2026", false},
		{"2026-3-1", false},
	}
	for _, tt := range tests {
		ts, ok := ParseFilterDate(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseFilterDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
		}
		if ok && ts != day(tt.in) {
			t.Errorf("ParseFilterDate(%q) = %d, want %d", tt.in, ts, day(tt.in))
		}
	}
}
