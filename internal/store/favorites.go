package store

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/roostlabs/roost/internal/broker"
	"github.com/roostlabs/roost/internal/localdata"
)

// Favorites holds the favorited listing IDs. Toggles apply optimistically
// to memory and the local cache, then sync to the broker when a user is
// signed in; a failed backend call rolls the set back to its pre-toggle
// state. IDs that do not parse as broker post IDs stay local-only.
type Favorites struct {
	mu   sync.RWMutex
	api  broker.API
	data *localdata.Store
	ids  []string
}

// NewFavorites builds an empty favorites store.
func NewFavorites(api broker.API, data *localdata.Store) *Favorites {
	return &Favorites{api: api, data: data}
}

// All returns a copy of the favorite ID set in stable order.
func (s *Favorites) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneIDs(s.ids)
}

// IsFavorite reports membership for a listing ID.
func (s *Favorites) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return contains(s.ids, id)
}

// Toggle flips membership for id. The flip lands in memory and the local
// cache immediately. With a signed-in user and a numeric post ID the
// matching add/remove call is issued; if it fails, memory and cache are
// rolled back to the pre-toggle set.
func (s *Favorites) Toggle(ctx context.Context, id string, userID int64) {
	s.mu.Lock()
	prev := cloneIDs(s.ids)
	adding := !contains(s.ids, id)
	if adding {
		s.ids = append(s.ids, id)
	} else {
		s.ids = remove(s.ids, id)
	}
	next := cloneIDs(s.ids)
	s.mu.Unlock()
	s.persist(next)

	postID, numeric := parsePostID(id)
	if userID <= 0 || !numeric {
		return
	}

	var err error
	if adding {
		err = s.api.AddFavorite(ctx, userID, postID)
	} else {
		err = s.api.RemoveFavorite(ctx, userID, postID)
	}
	if err != nil {
		log.Printf("favorite toggle for %s failed, rolling back: %v", id, err)
		s.mu.Lock()
		s.ids = prev
		s.mu.Unlock()
		s.persist(prev)
	}
}

// Hydrate loads the locally cached set, and for a signed-in user merges it
// with the broker set. The merge is a union: local additions made while
// signed out are preserved, never discarded. Local-only entries are then
// pushed via a sync call. Backend errors degrade to the local set.
func (s *Favorites) Hydrate(ctx context.Context, userID int64) {
	var local []string
	if _, err := s.data.Get(localdata.KeyFavorites, &local); err != nil {
		log.Printf("discarding corrupt favorites cache: %v", err)
		_ = s.data.Delete(localdata.KeyFavorites)
		local = nil
	}

	s.mu.Lock()
	s.ids = cloneIDs(local)
	s.mu.Unlock()

	if userID <= 0 {
		return
	}

	remote, err := s.api.FavoriteIDs(ctx, userID)
	if err != nil {
		log.Printf("fetch favorites failed, keeping local set: %v", err)
		return
	}

	merged := cloneIDs(remote)
	var localOnly []string
	for _, id := range local {
		if !contains(merged, id) {
			merged = append(merged, id)
			localOnly = append(localOnly, id)
		}
	}

	s.mu.Lock()
	s.ids = merged
	s.mu.Unlock()
	s.persist(merged)

	if len(localOnly) > 0 {
		if err := s.Sync(ctx, userID); err != nil {
			log.Printf("push of local-only favorites failed: %v", err)
		}
	}
}

// Sync bulk-pushes the numeric portion of the current set to the broker.
// On success the canonical set the broker returns replaces local state,
// keeping any non-numeric local-only entries.
func (s *Favorites) Sync(ctx context.Context, userID int64) error {
	current := s.All()

	var postIDs []int64
	var localOnly []string
	for _, id := range current {
		if postID, ok := parsePostID(id); ok {
			postIDs = append(postIDs, postID)
		} else {
			localOnly = append(localOnly, id)
		}
	}

	canonical, err := s.api.SyncFavorites(ctx, userID, postIDs)
	if err != nil {
		return err
	}

	next := cloneIDs(canonical)
	for _, id := range localOnly {
		if !contains(next, id) {
			next = append(next, id)
		}
	}

	s.mu.Lock()
	s.ids = next
	s.mu.Unlock()
	s.persist(next)
	return nil
}

// Clear resets the set unconditionally. Used at logout.
func (s *Favorites) Clear() {
	s.mu.Lock()
	s.ids = nil
	s.mu.Unlock()
	if err := s.data.Delete(localdata.KeyFavorites); err != nil {
		log.Printf("clear favorites cache failed: %v", err)
	}
}

func (s *Favorites) persist(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	if err := s.data.Set(localdata.KeyFavorites, ids); err != nil {
		log.Printf("persist favorites failed: %v", err)
	}
}

func parsePostID(id string) (int64, bool) {
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

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}

func cloneIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	dup := make([]string, len(ids))
	copy(dup, ids)
	return dup
}
