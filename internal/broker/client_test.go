package broker_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/roostlabs/roost/internal/broker"
	"github.com/roostlabs/roost/internal/brokertest"
	"github.com/roostlabs/roost/internal/listing"
)

func TestAPIErrorString(t *testing.T) {
	withMessage := &broker.APIError{Message: "invalid credentials", Status: 401}
	if got := withMessage.Error(); got != "invalid credentials" {
		t.Errorf("Error() = %q, want message passthrough", got)
	}
	bare := &broker.APIError{Status: 503}
	if got := bare.Error(); got != "broker returned status 503" {
		t.Errorf("Error() = %q, want status fallback", got)
	}
}

func TestDoEnvelopeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"error":true,"message":"post not found"}`))
	}))
	defer srv.Close()

	c, err := broker.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.FetchPosts(context.Background())
	var apiErr *broker.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("FetchPosts error = %v, want *APIError", err)
	}
	if apiErr.Message != "post not found" {
		t.Errorf("message = %q, want %q", apiErr.Message, "post not found")
	}
}

func TestDoUndecodableErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := broker.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.FetchPosts(context.Background())
	var apiErr *broker.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("FetchPosts error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Message != "" {
		t.Errorf("got %+v, want bare status 502", apiErr)
	}
}

func TestFetchPostsEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":false}`))
	}))
	defer srv.Close()

	c, err := broker.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	posts, err := c.FetchPosts(context.Background())
	if err != nil {
		t.Fatalf("FetchPosts: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("got %d posts, want none", len(posts))
	}
}

func TestCreatePostWirePayload(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/posts" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":false,"data":{"id":"101","title":"Sunny loft"}}`))
	}))
	defer srv.Close()

	c, err := broker.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	post := listing.Listing{
		Title:        "Sunny loft",
		Price:        1800,
		Neighborhood: "Downtown Davis",
		Coordinates:  listing.Coordinates{Lat: 40.99, Lng: 29.03},
		Radius:       500,
		Type:         listing.TypeLoft,
		Author:       listing.Author{Name: "should not be sent"},
	}
	created, err := c.CreatePost(context.Background(), post, 7)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if created.ID != "101" {
		t.Errorf("created ID = %q, want broker-assigned %q", created.ID, "101")
	}

	if captured["authorId"] != float64(7) {
		t.Errorf("authorId = %v, want 7", captured["authorId"])
	}
	if captured["lat"] != 40.99 || captured["lng"] != 29.03 {
		t.Errorf("coordinates sent as lat=%v lng=%v, want flat 40.99/29.03", captured["lat"], captured["lng"])
	}
	if _, nested := captured["coordinates"]; nested {
		t.Error("payload carries nested coordinates, want flat lat/lng")
	}
	if _, hasAuthor := captured["author"]; hasAuthor {
		t.Error("payload carries author snapshot, broker assigns authorship")
	}
	images, isSlice := captured["additionalImages"].([]any)
	if !isSlice || len(images) != 0 {
		t.Errorf("additionalImages = %v, want empty array when unset", captured["additionalImages"])
	}
}

func TestUpdatePostRequiresNumericID(t *testing.T) {
	c, err := broker.NewClient("http://localhost:1")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.UpdatePost(context.Background(), listing.Listing{ID: "local-abc", Title: "x"}, 7)
	if err == nil {
		t.Fatal("UpdatePost accepted a local fallback ID")
	}
}

func TestDeletePostBody(t *testing.T) {
	var (
		method, path string
		body         map[string]int64
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":false}`))
	}))
	defer srv.Close()

	c, err := broker.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if err := c.DeletePost(context.Background(), 42, 7); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if method != http.MethodDelete || path != "/posts/42" {
		t.Errorf("request = %s %s, want DELETE /posts/42", method, path)
	}
	if body["authorId"] != 7 {
		t.Errorf("authorId = %d, want 7", body["authorId"])
	}
}

func TestSessionCookieLifecycle(t *testing.T) {
	srv := brokertest.New(brokertest.Account{
		ID: 7, Email: "ada@example.com", Password: "hunter22", First: "Ada", Last: "Lovelace",
	})
	defer srv.Close()

	c, err := broker.NewClient(srv.URL())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.HasSessionCookies() {
		t.Fatal("fresh client reports session cookies")
	}

	user, err := c.Login(context.Background(), "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.DisplayName() != "Ada Lovelace" {
		t.Errorf("DisplayName = %q, want %q", user.DisplayName(), "Ada Lovelace")
	}
	if !c.HasSessionCookies() {
		t.Fatal("login did not capture session cookies")
	}

	// Restore the persisted cookies into a fresh client and resolve the
	// profile without logging in again.
	restored, err := broker.NewClient(srv.URL())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	restored.RestoreSessionCookies(c.SessionCookies())
	if !restored.HasSessionCookies() {
		t.Fatal("restored client reports no session cookies")
	}
	profile, err := restored.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile after restore: %v", err)
	}
	if profile.Email != "ada@example.com" {
		t.Errorf("profile email = %q, want %q", profile.Email, "ada@example.com")
	}
}

func TestProfileWithoutSession(t *testing.T) {
	srv := brokertest.New()
	defer srv.Close()

	c, err := broker.NewClient(srv.URL())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.Profile(context.Background())
	var apiErr *broker.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Profile error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.Status)
	}
}

func TestGoogleLoginURL(t *testing.T) {
	c, err := broker.NewClient("broker.example.com:9000")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	want := "http://broker.example.com:9000/oauth/google/login"
	if got := c.GoogleLoginURL(); got != want {
		t.Errorf("GoogleLoginURL = %q, want %q", got, want)
	}
}

func TestFavoritesRoundTrip(t *testing.T) {
	srv := brokertest.New()
	defer srv.Close()
	srv.SeedFavorites(7, 1, 2)

	c, err := broker.NewClient(srv.URL())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	if err := c.AddFavorite(ctx, 7, 3); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if err := c.RemoveFavorite(ctx, 7, 1); err != nil {
		t.Fatalf("RemoveFavorite: %v", err)
	}
	ids, err := c.FavoriteIDs(ctx, 7)
	if err != nil {
		t.Fatalf("FavoriteIDs: %v", err)
	}
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "2" || ids[1] != "3" {
		t.Errorf("FavoriteIDs = %v, want [2 3]", ids)
	}

	synced, err := c.SyncFavorites(ctx, 7, []int64{5})
	if err != nil {
		t.Fatalf("SyncFavorites: %v", err)
	}
	sort.Strings(synced)
	if len(synced) != 3 || synced[0] != "2" || synced[1] != "3" || synced[2] != "5" {
		t.Errorf("SyncFavorites = %v, want union [2 3 5]", synced)
	}
}

func TestSyncFavoritesNilIDs(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":false,"data":[]}`))
	}))
	defer srv.Close()

	c, err := broker.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.SyncFavorites(context.Background(), 7, nil); err != nil {
		t.Fatalf("SyncFavorites: %v", err)
	}
	ids, isSlice := captured["postIds"].([]any)
	if !isSlice || len(ids) != 0 {
		t.Errorf("postIds = %v, want empty array for nil input", captured["postIds"])
	}
}
