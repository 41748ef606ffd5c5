package store

import (
	"sync"

	"github.com/roostlabs/roost/internal/listing"
)

// View identifies the top-level page.
type View string

const (
	ViewDiscover View = "discover"
	ViewProfile  View = "profile"
)

// ProfileTab identifies the active profile tab.
type ProfileTab string

const (
	TabFavorites ProfileTab = "favorites"
	TabPosts     ProfileTab = "posts"
)

// SortOption identifies the listing sort order.
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortPriceLow  SortOption = "price-low"
	SortPriceHigh SortOption = "price-high"
)

// ViewState is the ephemeral navigation and filter state. It is a pure
// state container: no network, never persisted.
type ViewState struct {
	mu              sync.RWMutex
	view            View
	profileTab      ProfileTab
	sortBy          SortOption
	selected        *listing.Listing
	showAuthModal   bool
	showCreateModal bool
	listingToEdit   *listing.Listing
	mapCenter       *listing.Coordinates
	filterStart     string
	filterEnd       string
}

// ViewSnapshot is a point-in-time copy of the view state.
type ViewSnapshot struct {
	View            View
	ProfileTab      ProfileTab
	SortBy          SortOption
	Selected        *listing.Listing
	ShowAuthModal   bool
	ShowCreateModal bool
	ListingToEdit   *listing.Listing
	MapCenter       *listing.Coordinates
	FilterStartDate string
	FilterEndDate   string
}

// NewViewState builds view state at its navigation defaults.
func NewViewState() *ViewState {
	return &ViewState{
		view:       ViewDiscover,
		profileTab: TabFavorites,
		sortBy:     SortNewest,
	}
}

// Snapshot returns a copy of the current view state.
func (v *ViewState) Snapshot() ViewSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return ViewSnapshot{
		View:            v.view,
		ProfileTab:      v.profileTab,
		SortBy:          v.sortBy,
		Selected:        cloneListing(v.selected),
		ShowAuthModal:   v.showAuthModal,
		ShowCreateModal: v.showCreateModal,
		ListingToEdit:   cloneListing(v.listingToEdit),
		MapCenter:       cloneCenter(v.mapCenter),
		FilterStartDate: v.filterStart,
		FilterEndDate:   v.filterEnd,
	}
}

// Navigate switches pages and drops any listing selection.
func (v *ViewState) Navigate(view View) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.view = view
	v.selected = nil
}

// SetProfileTab switches the active profile tab.
func (v *ViewState) SetProfileTab(tab ProfileTab) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.profileTab = tab
}

// SetSortBy changes the sort order.
func (v *ViewState) SetSortBy(sort SortOption) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sortBy = sort
}

// ResetToHome returns to the discover view with default sort, no selection
// and no filters.
func (v *ViewState) ResetToHome() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.view = ViewDiscover
	v.sortBy = SortNewest
	v.selected = nil
	v.filterStart = ""
	v.filterEnd = ""
}

// OpenAuthModal shows the authentication modal.
func (v *ViewState) OpenAuthModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showAuthModal = true
}

// CloseAuthModal hides the authentication modal.
func (v *ViewState) CloseAuthModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showAuthModal = false
}

// OpenCreateModal shows the listing form for a new posting.
func (v *ViewState) OpenCreateModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showCreateModal = true
	v.listingToEdit = nil
}

// OpenEditModal shows the listing form pre-filled with an existing posting.
func (v *ViewState) OpenEditModal(l listing.Listing) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showCreateModal = true
	v.listingToEdit = &l
}

// CloseCreateModal hides the listing form and drops the pending edit.
func (v *ViewState) CloseCreateModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showCreateModal = false
	v.listingToEdit = nil
}

// SelectListing focuses a listing and recenters the map on it.
func (v *ViewState) SelectListing(l listing.Listing) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = &l
	center := l.Coordinates
	v.mapCenter = &center
}

// ClearSelectedListing drops the focused listing.
func (v *ViewState) ClearSelectedListing() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = nil
}

// SetFilterStartDate sets the start of the availability filter window.
// A start date after the current end date clears the end date, which the
// UI then forces the user to re-enter. Dates are ISO yyyy-mm-dd strings,
// so lexicographic comparison matches chronological order.
func (v *ViewState) SetFilterStartDate(date string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filterStart = date
	if v.filterEnd != "" && date > v.filterEnd {
		v.filterEnd = ""
	}
}

// SetFilterEndDate sets the end of the availability filter window. An end
// before the current start date is ignored; the window's minimum is pinned
// to its start.
func (v *ViewState) SetFilterEndDate(date string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if date != "" && v.filterStart != "" && date < v.filterStart {
		return
	}
	v.filterEnd = date
}

// ClearFilters drops both filter dates.
func (v *ViewState) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filterStart = ""
	v.filterEnd = ""
}

func cloneListing(l *listing.Listing) *listing.Listing {
	if l == nil {
		return nil
	}
	dup := *l
	return &dup
}

func cloneCenter(c *listing.Coordinates) *listing.Coordinates {
	if c == nil {
		return nil
	}
	dup := *c
	return &dup
}
