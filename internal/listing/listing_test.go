package listing

import (
	"testing"
	"time"
)

func TestListingValidate(t *testing.T) {
	valid := Listing{
		Title:         "Sunny loft",
		Price:         1800,
		Bedrooms:      2,
		Bathrooms:     1,
		AvailableFrom: 100,
		AvailableTo:   200,
	}

	tests := []struct {
		name    string
		mutate  func(*Listing)
		wantErr bool
	}{
		{"valid", func(l *Listing) {}, false},
		{"zero price ok", func(l *Listing) { l.Price = 0 }, false},
		{"empty title", func(l *Listing) { l.Title = "  " }, true},
		{"negative price", func(l *Listing) { l.Price = -1 }, true},
		{"negative bedrooms", func(l *Listing) { l.Bedrooms = -1 }, true},
		{"negative bathrooms", func(l *Listing) { l.Bathrooms = -2 }, true},
		{"availability inverted", func(l *Listing) { l.AvailableFrom, l.AvailableTo = 200, 100 }, true},
		{"availability equal ok", func(l *Listing) { l.AvailableTo = l.AvailableFrom }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			tt.mutate(&l)
			if err := l.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNumericID(t *testing.T) {
	tests := []struct {
		id     string
		want   int64
		wantOK bool
	}{
		{"42", 42, true},
		{" 42 ", 42, true},
		{"", 0, false},
		{"local-1b2f", 0, false},
		{"12x", 0, false},
	}
	for _, tt := range tests {
		got, ok := Listing{ID: tt.id}.NumericID()
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NumericID(%q) = (%d, %v), want (%d, %v)", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestOwnedBy(t *testing.T) {
	l := Listing{Author: Author{Name: "Ada Lovelace"}}
	if !l.OwnedBy("Ada Lovelace") {
		t.Error("OwnedBy rejected the author's own name")
	}
	if l.OwnedBy("Grace Hopper") {
		t.Error("OwnedBy matched a different name")
	}

	// Authorless listings never match, even against an empty name.
	anon := Listing{}
	if anon.OwnedBy("") {
		t.Error("authorless listing matched the empty name")
	}
}

func TestUserDisplayNameAndInitials(t *testing.T) {
	tests := []struct {
		name         string
		user         User
		wantDisplay  string
		wantInitials string
	}{
		{"full name", User{FirstName: "Ada", LastName: "Lovelace"}, "Ada Lovelace", "AL"},
		{"first only", User{FirstName: "Ada"}, "Ada", "A"},
		{"last only", User{LastName: "Lovelace"}, "Lovelace", "L"},
		{"empty", User{}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.wantDisplay {
				t.Errorf("DisplayName = %q, want %q", got, tt.wantDisplay)
			}
			if got := tt.user.Initials(); got != tt.wantInitials {
				t.Errorf("Initials = %q, want %q", got, tt.wantInitials)
			}
		})
	}
}

func TestValidNeighborhood(t *testing.T) {
	if !ValidNeighborhood("Downtown Davis") {
		t.Error("known neighborhood rejected")
	}
	if ValidNeighborhood("Midtown") {
		t.Error("unknown neighborhood accepted")
	}
}

func TestSeedWellFormed(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	seed := Seed(now)
	if len(seed) == 0 {
		t.Fatal("seed is empty")
	}
	seen := make(map[string]bool, len(seed))
	for _, l := range seed {
		if _, ok := l.NumericID(); !ok {
			t.Errorf("seed listing %q has a non-numeric ID", l.ID)
		}
		if seen[l.ID] {
			t.Errorf("duplicate seed ID %q", l.ID)
		}
		seen[l.ID] = true
		if err := l.Validate(); err != nil {
			t.Errorf("seed listing %q invalid: %v", l.ID, err)
		}
		if !ValidNeighborhood(l.Neighborhood) {
			t.Errorf("seed listing %q has unknown neighborhood %q", l.ID, l.Neighborhood)
		}
		if l.CreatedAt >= now.UnixMilli() {
			t.Errorf("seed listing %q created in the future", l.ID)
		}
	}
}
