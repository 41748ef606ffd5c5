package store

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/roostlabs/roost/internal/broker"
	"github.com/roostlabs/roost/internal/listing"
	"github.com/roostlabs/roost/internal/localdata"
)

// Session owns the authenticated user. The current user is mirrored to the
// local cache for fast rehydration and cleared from it on logout.
type Session struct {
	mu      sync.RWMutex
	api     broker.API
	data    *localdata.Store
	current *listing.User
	loading bool
}

// NewSession builds an anonymous session.
func NewSession(api broker.API, data *localdata.Store) *Session {
	return &Session{api: api, data: data}
}

// Current returns a copy of the signed-in user, or nil when anonymous.
func (s *Session) Current() *listing.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// Loading reports whether a profile fetch is in flight.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// UserID returns the broker's numeric ID for the current user, or 0 when
// anonymous or unresolved.
func (s *Session) UserID() int64 {
	u := s.Current()
	if u == nil {
		return 0
	}
	id, ok := u.NumericID()
	if !ok {
		return 0
	}
	return id
}

// Login adopts the user and persists it for the next start.
func (s *Session) Login(u listing.User) {
	if err := s.data.Set(localdata.KeyUser, u); err != nil {
		log.Printf("persist user failed: %v", err)
	}
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
}

// Logout tells the broker to end the session (best effort) and then
// unconditionally clears local state. From the client's perspective logout
// always succeeds.
func (s *Session) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		log.Printf("logout call failed: %v", err)
	}
	if err := s.data.Delete(localdata.KeyUser); err != nil {
		log.Printf("clear cached user failed: %v", err)
	}
	if err := s.data.Delete(localdata.KeyCookies); err != nil {
		log.Printf("clear cached cookies failed: %v", err)
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Hydrate restores identity at startup. Fast path: adopt the cached user
// record when present and well-formed (a corrupt record is discarded).
// Slow path: with no usable record but session cookies present (as after
// an OAuth redirect), fetch the profile from the broker; on failure the
// session stays anonymous.
func (s *Session) Hydrate(ctx context.Context) {
	var cached listing.User
	ok, err := s.data.Get(localdata.KeyUser, &cached)
	if err != nil {
		log.Printf("discarding corrupt cached user: %v", err)
		_ = s.data.Delete(localdata.KeyUser)
		ok = false
	}
	if ok && wellFormed(cached) {
		s.mu.Lock()
		s.current = &cached
		s.mu.Unlock()
		return
	}
	if ok {
		_ = s.data.Delete(localdata.KeyUser)
	}

	if !s.api.HasSessionCookies() {
		return
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	user, err := s.api.Profile(ctx)

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	if err != nil {
		log.Printf("profile fetch during hydration failed: %v", err)
		return
	}
	s.Login(*user)
}

func wellFormed(u listing.User) bool {
	return strings.TrimSpace(u.Email) != ""
}
