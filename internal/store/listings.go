package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/roostlabs/roost/internal/broker"
	"github.com/roostlabs/roost/internal/listing"
)

// Listings holds the listing collection and synchronizes it with the
// broker. Mutations are dual-path: backend first when an author ID is
// available, with an offline-tolerant local fallback otherwise or on
// failure. A creation attempt is never silently dropped.
type Listings struct {
	mu         sync.RWMutex
	api        broker.API
	ids        IDGenerator
	now        func() time.Time
	items      []listing.Listing
	loading    bool
	hasFetched bool
	errMsg     string
}

// NewListings builds a listings store seeded with the given collection.
func NewListings(api broker.API, seed []listing.Listing) *Listings {
	return &Listings{
		api:   api,
		ids:   randomIDs{},
		now:   time.Now,
		items: cloneListings(seed),
	}
}

// Items returns a copy of the current collection.
func (s *Listings) Items() []listing.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneListings(s.items)
}

// Loading reports whether a fetch or mutation is in flight.
func (s *Listings) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last recorded failure message, empty when healthy.
func (s *Listings) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// HasFetched reports whether a fetch has completed (successfully or not).
func (s *Listings) HasFetched() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasFetched
}

// Fetch loads the collection from the broker. Repeat calls are memoized:
// while a fetch is in flight, or once one has completed and force is false,
// the call is a no-op. A failed fetch still counts as completed so mounting
// consumers do not trigger retry storms.
func (s *Listings) Fetch(ctx context.Context, force bool) {
	s.mu.Lock()
	if s.loading || (s.hasFetched && !force) {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	posts, err := s.api.FetchPosts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.hasFetched = true
	if err != nil {
		s.errMsg = err.Error()
		log.Printf("fetch listings failed: %v", err)
		return
	}
	s.items = posts
}

// Add creates a listing. With a usable author ID the broker record (with
// its assigned ID and authoritative author) is prepended; otherwise, or on
// backend failure, the client-side record is prepended with a generated
// fallback ID. The collection is mutated exactly once per call.
func (s *Listings) Add(ctx context.Context, l listing.Listing, authorID int64) {
	s.setLoading()

	if authorID > 0 {
		created, err := s.api.CreatePost(ctx, l, authorID)
		if err == nil && created != nil {
			s.prepend(*created)
			return
		}
		s.recordFallback("create listing", err)
	}

	if l.ID == "" {
		l.ID = s.ids.NewID()
	}
	if l.CreatedAt == 0 {
		l.CreatedAt = s.now().UnixMilli()
	}
	s.prepend(l)
}

// Update replaces the listing record with the same ID, backend first with
// local fallback.
func (s *Listings) Update(ctx context.Context, l listing.Listing, authorID int64) {
	s.setLoading()

	if authorID > 0 {
		updated, err := s.api.UpdatePost(ctx, l, authorID)
		if err == nil && updated != nil {
			s.replaceByID(l.ID, *updated)
			return
		}
		s.recordFallback("update listing", err)
	}
	s.replaceByID(l.ID, l)
}

// Delete removes the listing, backend first with local fallback. The author
// ID rides along as the broker's authorization parameter.
func (s *Listings) Delete(ctx context.Context, id string, authorID int64) {
	s.setLoading()

	if authorID > 0 {
		if postID, ok := parsePostID(id); ok {
			err := s.api.DeletePost(ctx, postID, authorID)
			if err != nil {
				s.recordFallback("delete listing", err)
			}
		}
	}
	s.removeByID(id)
}

// Set replaces the whole collection. Used for direct hydration.
func (s *Listings) Set(items []listing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = cloneListings(items)
}

func (s *Listings) setLoading() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *Listings) recordFallback(op string, err error) {
	if err == nil {
		return
	}
	log.Printf("%s failed, applying local fallback: %v", op, err)
	s.mu.Lock()
	s.errMsg = err.Error()
	s.mu.Unlock()
}

func (s *Listings) prepend(l listing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]listing.Listing{l}, s.items...)
	s.loading = false
}

func (s *Listings) replaceByID(id string, l listing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = l
		}
	}
	s.loading = false
}

func (s *Listings) removeByID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.loading = false
}

func cloneListings(items []listing.Listing) []listing.Listing {
	if len(items) == 0 {
		return nil
	}
	dup := make([]listing.Listing, len(items))
	copy(dup, items)
	return dup
}
