package localdata

import (
	"net/http"
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openStore(t)

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := s.Set("doc", doc{Name: "ada", Count: 3}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got doc
	found, err := s.Get("doc", &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("Get found = false after Set")
	}
	if got.Name != "ada" || got.Count != 3 {
		t.Errorf("got %+v, want {ada 3}", got)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := openStore(t)

	if err := s.Set("k", []int64{1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("k", []int64{2, 3}); err != nil {
		t.Fatalf("Set again: %v", err)
	}
	var got []int64
	if _, err := s.Get("k", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("got %v, want [2 3]", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := openStore(t)

	var got string
	found, err := s.Get("absent", &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("found = true for a key never written")
	}
}

func TestGetCorruptValue(t *testing.T) {
	s := openStore(t)

	// A string stored where the reader expects a slice.
	if err := s.Set(KeyFavorites, "not-a-list"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var got []int64
	if _, err := s.Get(KeyFavorites, &got); err == nil {
		t.Fatal("Get decoded a corrupt value without error")
	}
}

func TestDelete(t *testing.T) {
	s := openStore(t)

	if err := s.Set("k", 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var got int
	found, err := s.Get("k", &got)
	if err != nil || found {
		t.Errorf("Get after Delete = (%v, %v), want absent", found, err)
	}
	if err := s.Delete("k"); err != nil {
		t.Errorf("Delete of absent key: %v", err)
	}
}

func TestCookiesRoundTrip(t *testing.T) {
	s := openStore(t)

	in := []*http.Cookie{
		{Name: "access_token", Value: "a1", Path: "/"},
		{Name: "refresh_token", Value: "r1", Path: "/"},
	}
	if err := s.SaveCookies(in); err != nil {
		t.Fatalf("SaveCookies: %v", err)
	}

	out := s.LoadCookies()
	if len(out) != 2 {
		t.Fatalf("LoadCookies returned %d cookies, want 2", len(out))
	}
	for i, ck := range out {
		if ck.Name != in[i].Name || ck.Value != in[i].Value || ck.Path != in[i].Path {
			t.Errorf("cookie %d = %+v, want %+v", i, ck, in[i])
		}
	}
}

func TestLoadCookiesDegradesToNil(t *testing.T) {
	s := openStore(t)

	if got := s.LoadCookies(); got != nil {
		t.Errorf("LoadCookies with nothing stored = %v, want nil", got)
	}

	if err := s.Set(KeyCookies, 42); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := s.LoadCookies(); got != nil {
		t.Errorf("LoadCookies with corrupt record = %v, want nil", got)
	}
}

func TestOpenCreatesDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "cache.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open with missing parent dirs: %v", err)
	}
	defer s.Close()
	if err := s.Set("k", "v"); err != nil {
		t.Errorf("Set on freshly created db: %v", err)
	}
}
