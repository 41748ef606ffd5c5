package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/roostlabs/roost/internal/brokertest"
	"github.com/roostlabs/roost/internal/localdata"
)

func testData(t *testing.T) *localdata.Store {
	t.Helper()
	data, err := localdata.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = data.Close() })
	return data
}

func TestFavoritesToggleLocal(t *testing.T) {
	t.Parallel()
	api := &brokertest.Fake{}
	data := testData(t)
	s := NewFavorites(api, data)
	ctx := context.Background()

	s.Toggle(ctx, "42", 0)
	if !s.IsFavorite("42") {
		t.Fatal("toggle on did not add the ID")
	}
	s.Toggle(ctx, "42", 0)
	if s.IsFavorite("42") {
		t.Fatal("toggle off did not remove the ID")
	}
	if got := api.Calls("AddFavorite") + api.Calls("RemoveFavorite"); got != 0 {
		t.Fatalf("signed-out toggles reached the broker %d times", got)
	}

	// The off-toggle must be persisted too.
	var cached []string
	if ok, err := data.Get(localdata.KeyFavorites, &cached); !ok || err != nil {
		t.Fatalf("favorites cache missing: ok=%v err=%v", ok, err)
	}
	if len(cached) != 0 {
		t.Fatalf("cached set = %v, want empty", cached)
	}
}

func TestFavoritesToggleBackend(t *testing.T) {
	t.Parallel()
	api := &brokertest.Fake{}
	s := NewFavorites(api, testData(t))
	ctx := context.Background()

	s.Toggle(ctx, "42", 7)
	if got := api.Calls("AddFavorite"); got != 1 {
		t.Fatalf("AddFavorite called %d times, want 1", got)
	}
	s.Toggle(ctx, "42", 7)
	if got := api.Calls("RemoveFavorite"); got != 1 {
		t.Fatalf("RemoveFavorite called %d times, want 1", got)
	}
}

func TestFavoritesToggleSkipsBackendForLocalIDs(t *testing.T) {
	t.Parallel()
	api := &brokertest.Fake{}
	s := NewFavorites(api, testData(t))

	s.Toggle(context.Background(), "local-3f9a", 7)

	if !s.IsFavorite("local-3f9a") {
		t.Fatal("local-only ID not favorited")
	}
	if got := api.Calls("AddFavorite"); got != 0 {
		t.Fatalf("AddFavorite called %d times for a non-numeric ID", got)
	}
}

func TestFavoritesToggleRollback(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		initial []string
		toggle  string
		want    []string
	}{
		{"failed add rolls back", nil, "42", nil},
		{"failed remove restores", []string{"42", "43"}, "42", []string{"42", "43"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &brokertest.Fake{
				AddFavoriteFn: func(ctx context.Context, userID, postID int64) error {
					return errors.New("add failed")
				},
				RemoveFavoriteFn: func(ctx context.Context, userID, postID int64) error {
					return errors.New("remove failed")
				},
			}
			data := testData(t)
			s := NewFavorites(api, data)
			ctx := context.Background()
			for _, id := range tt.initial {
				// Seed without hitting the scripted failures.
				s.Toggle(ctx, id, 0)
			}

			s.Toggle(ctx, tt.toggle, 7)

			if got := s.All(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("All() = %v, want pre-toggle set %v", got, tt.want)
			}
			var cached []string
			if _, err := data.Get(localdata.KeyFavorites, &cached); err != nil {
				t.Fatalf("read cache: %v", err)
			}
			if len(cached) != len(tt.want) {
				t.Errorf("cache = %v, want rolled-back set %v", cached, tt.want)
			}
		})
	}
}

func TestFavoritesHydrateSignedOut(t *testing.T) {
	t.Parallel()
	api := &brokertest.Fake{}
	data := testData(t)
	if err := data.Set(localdata.KeyFavorites, []string{"42", "local-a"}); err != nil {
		t.Fatal(err)
	}
	s := NewFavorites(api, data)

	s.Hydrate(context.Background(), 0)

	if got := s.All(); !reflect.DeepEqual(got, []string{"42", "local-a"}) {
		t.Fatalf("All() = %v, want cached set", got)
	}
	if got := api.Calls("FavoriteIDs"); got != 0 {
		t.Fatalf("FavoriteIDs called %d times while signed out", got)
	}
}

func TestFavoritesHydrateUnionMerge(t *testing.T) {
	t.Parallel()
	api := &brokertest.Fake{
		FavoriteIDsFn: func(ctx context.Context, userID int64) ([]string, error) {
			return []string{"1", "2"}, nil
		},
	}
	data := testData(t)
	if err := data.Set(localdata.KeyFavorites, []string{"2", "3"}); err != nil {
		t.Fatal(err)
	}
	s := NewFavorites(api, data)

	s.Hydrate(context.Background(), 7)

	// Remote order first, then local-only additions. Nothing local is lost.
	if got := s.All(); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Fatalf("All() = %v, want union [1 2 3]", got)
	}
	if got := api.Calls("SyncFavorites"); got != 1 {
		t.Fatalf("SyncFavorites called %d times, want 1 push of local-only IDs", got)
	}
}

func TestFavoritesHydrateNoLocalOnlySkipsSync(t *testing.T) {
	t.Parallel()
	api := &brokertest.Fake{
		FavoriteIDsFn: func(ctx context.Context, userID int64) ([]string, error) {
			return []string{"1", "2"}, nil
		},
	}
	data := testData(t)
	if err := data.Set(localdata.KeyFavorites, []string{"2"}); err != nil {
		t.Fatal(err)
	}
	s := NewFavorites(api, data)

	s.Hydrate(context.Background(), 7)

	if got := api.Calls("SyncFavorites"); got != 0 {
		t.Fatalf("SyncFavorites called %d times with nothing local-only", got)
	}
}

func TestFavoritesHydrateCorruptCache(t *testing.T) {
	t.Parallel()
	data := testData(t)
	if err := data.Set(localdata.KeyFavorites, "not-a-list"); err != nil {
		t.Fatal(err)
	}
	s := NewFavorites(&brokertest.Fake{}, data)

	s.Hydrate(context.Background(), 0)

	if got := s.All(); len(got) != 0 {
		t.Fatalf("All() = %v, want empty after corrupt cache", got)
	}
	var check []string
	if ok, _ := data.Get(localdata.KeyFavorites, &check); ok {
		t.Fatal("corrupt cache entry was not discarded")
	}
}

func TestFavoritesHydrateBackendFailureKeepsLocal(t *testing.T) {
	t.Parallel()
	api := &brokertest.Fake{
		FavoriteIDsFn: func(ctx context.Context, userID int64) ([]string, error) {
			return nil, errors.New("broker down")
		},
	}
	data := testData(t)
	if err := data.Set(localdata.KeyFavorites, []string{"42"}); err != nil {
		t.Fatal(err)
	}
	s := NewFavorites(api, data)

	s.Hydrate(context.Background(), 7)

	if got := s.All(); !reflect.DeepEqual(got, []string{"42"}) {
		t.Fatalf("All() = %v, want local set preserved", got)
	}
}

func TestFavoritesSyncKeepsNonNumeric(t *testing.T) {
	t.Parallel()
	var gotPostIDs []int64
	api := &brokertest.Fake{
		SyncFavoritesFn: func(ctx context.Context, userID int64, postIDs []int64) ([]string, error) {
			gotPostIDs = postIDs
			return []string{"1", "5"}, nil
		},
	}
	s := NewFavorites(api, testData(t))
	ctx := context.Background()
	s.Toggle(ctx, "1", 0)
	s.Toggle(ctx, "local-x", 0)

	if err := s.Sync(ctx, 7); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if !reflect.DeepEqual(gotPostIDs, []int64{1}) {
		t.Errorf("pushed post IDs = %v, want only numeric [1]", gotPostIDs)
	}
	if got := s.All(); !reflect.DeepEqual(got, []string{"1", "5", "local-x"}) {
		t.Errorf("All() = %v, want canonical set plus local-only", got)
	}
}

func TestFavoritesClear(t *testing.T) {
	t.Parallel()
	data := testData(t)
	s := NewFavorites(&brokertest.Fake{}, data)
	ctx := context.Background()
	s.Toggle(ctx, "42", 0)

	s.Clear()

	if got := s.All(); len(got) != 0 {
		t.Fatalf("All() = %v after clear", got)
	}
	var cached []string
	if ok, _ := data.Get(localdata.KeyFavorites, &cached); ok {
		t.Fatal("favorites cache entry survived Clear")
	}
}
