// Package brokertest provides an in-process fake of the broker service for
// tests: a chi router backed by in-memory maps, speaking the broker's
// {error,message,data} envelope and cookie-based sessions.
package brokertest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/roostlabs/roost/internal/listing"
)

// Account seeds a known user.
type Account struct {
	ID       int64
	Email    string
	Password string
	First    string
	Last     string
	Code     string // accepted verification code
}

// Server is the fake broker. Mutate the Fail* switches to force business
// errors on specific endpoints.
type Server struct {
	mu        sync.Mutex
	accounts  map[string]Account
	posts     []listing.Listing
	favorites map[int64]map[int64]bool
	nextPost  int64

	// request counters
	PostFetches int

	// failure switches
	FailLogin         bool
	FailPosts         bool
	FailCreatePost    bool
	FailAddFavorite   bool
	FailRemoveFav     bool
	FailFavoriteIDs   bool
	FailSync          bool
	FailForgot        bool
	FailReset         bool
	FailVerify        bool

	HTTP *httptest.Server
}

// New starts a fake broker with the given seed accounts.
func New(accounts ...Account) *Server {
	s := &Server{
		accounts:  make(map[string]Account),
		favorites: make(map[int64]map[int64]bool),
		nextPost:  100,
	}
	for _, a := range accounts {
		s.accounts[a.Email] = a
	}

	r := chi.NewRouter()
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/verify-email", s.handleVerifyEmail)
	r.Get("/auth/profile", s.handleProfile)
	r.Post("/auth/forgot-password", s.handleForgot)
	r.Post("/auth/reset-password", s.handleReset)
	r.Post("/auth/logout", s.handleLogout)

	r.Get("/posts", s.handlePosts)
	r.Post("/posts", s.handleCreatePost)
	r.Put("/posts/{id}", s.handleUpdatePost)
	r.Delete("/posts/{id}", s.handleDeletePost)

	r.Get("/favorites/{userID}/ids", s.handleFavoriteIDs)
	r.Post("/favorites", s.handleAddFavorite)
	r.Delete("/favorites/{userID}/{postID}", s.handleRemoveFavorite)
	r.Post("/favorites/sync", s.handleSyncFavorites)

	s.HTTP = httptest.NewServer(r)
	return s
}

// Close shuts the HTTP server down.
func (s *Server) Close() { s.HTTP.Close() }

// URL returns the fake broker's base URL.
func (s *Server) URL() string { return s.HTTP.URL }

// SeedPosts installs listings directly into the fake store.
func (s *Server) SeedPosts(posts ...listing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, posts...)
}

// Posts returns a copy of the stored listings.
func (s *Server) Posts() []listing.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := make([]listing.Listing, len(s.posts))
	copy(dup, s.posts)
	return dup
}

// FavoritesOf returns the stored favorite post IDs for a user.
func (s *Server) FavoritesOf(userID int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for id := range s.favorites[userID] {
		ids = append(ids, id)
	}
	return ids
}

// SeedFavorites installs favorites directly.
func (s *Server) SeedFavorites(userID int64, postIDs ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.favorites[userID]
	if set == nil {
		set = make(map[int64]bool)
		s.favorites[userID] = set
	}
	for _, id := range postIDs {
		set[id] = true
	}
}

func writeEnvelope(w http.ResponseWriter, status int, errFlag bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   errFlag,
		"message": message,
		"data":    data,
	})
}

func ok(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, false, "", data)
}

func fail(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, true, message, nil)
}

func userData(a Account) listing.User {
	return listing.User{
		ID:        strconv.FormatInt(a.ID, 10),
		FirstName: a.First,
		LastName:  a.Last,
		Email:     a.Email,
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.FailLogin {
		fail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	a, found := s.accounts[req.Email]
	s.mu.Unlock()
	if !found || a.Password != req.Password {
		fail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	setSessionCookies(w, a.ID)
	ok(w, userData(a))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email            string `json:"email"`
		Password         string `json:"password"`
		FirstName        string `json:"first_name"`
		LastName         string `json:"last_name"`
		VerificationCode string `json:"verification_code"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, found := s.accounts[req.Email]; found && existing.Code != req.VerificationCode {
		fail(w, http.StatusBadRequest, "invalid verification code")
		return
	}
	a := Account{
		ID:       int64(len(s.accounts) + 1),
		Email:    req.Email,
		Password: req.Password,
		First:    req.FirstName,
		Last:     req.LastName,
	}
	if seeded, found := s.accounts[req.Email]; found {
		a.ID = seeded.ID
	}
	s.accounts[req.Email] = a
	setSessionCookies(w, a.ID)
	ok(w, userData(a))
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	if s.FailVerify {
		fail(w, http.StatusInternalServerError, "mail service unavailable")
		return
	}
	ok(w, nil)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ck, err := r.Cookie("access_token")
	if err != nil || ck.Value == "" {
		fail(w, http.StatusUnauthorized, "not signed in")
		return
	}
	id, _ := strconv.ParseInt(ck.Value, 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.ID == id {
			ok(w, userData(a))
			return
		}
	}
	fail(w, http.StatusUnauthorized, "unknown session")
}

func (s *Server) handleForgot(w http.ResponseWriter, r *http.Request) {
	if s.FailForgot {
		fail(w, http.StatusNotImplemented, "not implemented")
		return
	}
	ok(w, nil)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if s.FailReset {
		fail(w, http.StatusNotImplemented, "not implemented")
		return
	}
	ok(w, nil)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "", MaxAge: -1, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "", MaxAge: -1, Path: "/"})
	ok(w, nil)
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.PostFetches++
	failPosts := s.FailPosts
	dup := make([]listing.Listing, len(s.posts))
	copy(dup, s.posts)
	s.mu.Unlock()

	if failPosts {
		fail(w, http.StatusInternalServerError, "post service unavailable")
		return
	}
	ok(w, dup)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if s.FailCreatePost {
		fail(w, http.StatusInternalServerError, "post service unavailable")
		return
	}
	post, authorID, err := decodePostPayload(r)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPost++
	post.ID = strconv.FormatInt(s.nextPost, 10)
	post.Author = s.authorOf(authorID)
	s.posts = append([]listing.Listing{post}, s.posts...)
	ok(w, post)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	post, authorID, err := decodePostPayload(r)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			post.ID = id
			post.Author = s.authorOf(authorID)
			post.CreatedAt = s.posts[i].CreatedAt
			s.posts[i] = post
			ok(w, post)
			return
		}
	}
	fail(w, http.StatusNotFound, "post not found")
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			ok(w, nil)
			return
		}
	}
	fail(w, http.StatusNotFound, "post not found")
}

func (s *Server) handleFavoriteIDs(w http.ResponseWriter, r *http.Request) {
	if s.FailFavoriteIDs {
		fail(w, http.StatusInternalServerError, "favourite service unavailable")
		return
	}
	userID, _ := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	ids := []string{}
	for postID := range s.favorites[userID] {
		ids = append(ids, strconv.FormatInt(postID, 10))
	}
	ok(w, ids)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	if s.FailAddFavorite {
		fail(w, http.StatusInternalServerError, "favourite service unavailable")
		return
	}
	var req struct {
		UserID int64 `json:"userId"`
		PostID int64 `json:"postId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.favorites[req.UserID]
	if set == nil {
		set = make(map[int64]bool)
		s.favorites[req.UserID] = set
	}
	set[req.PostID] = true
	ok(w, nil)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if s.FailRemoveFav {
		fail(w, http.StatusInternalServerError, "favourite service unavailable")
		return
	}
	userID, _ := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	postID, _ := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites[userID], postID)
	ok(w, nil)
}

func (s *Server) handleSyncFavorites(w http.ResponseWriter, r *http.Request) {
	if s.FailSync {
		fail(w, http.StatusInternalServerError, "favourite service unavailable")
		return
	}
	var req struct {
		UserID  int64   `json:"userId"`
		PostIDs []int64 `json:"postIds"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.favorites[req.UserID]
	if set == nil {
		set = make(map[int64]bool)
		s.favorites[req.UserID] = set
	}
	for _, id := range req.PostIDs {
		set[id] = true
	}
	ids := []string{}
	for postID := range set {
		ids = append(ids, strconv.FormatInt(postID, 10))
	}
	ok(w, ids)
}

func (s *Server) authorOf(authorID int64) listing.Author {
	for _, a := range s.accounts {
		if a.ID == authorID {
			return listing.Author{Name: userData(a).DisplayName()}
		}
	}
	return listing.Author{Name: fmt.Sprintf("user-%d", authorID)}
}

func decodePostPayload(r *http.Request) (listing.Listing, int64, error) {
	var req struct {
		Title            string  `json:"title"`
		Price            int     `json:"price"`
		Location         string  `json:"location"`
		Neighborhood     string  `json:"neighborhood"`
		Lat              float64 `json:"lat"`
		Lng              float64 `json:"lng"`
		Radius           int     `json:"radius"`
		Type             string  `json:"type"`
		ImageURL         string  `json:"imageUrl"`
		AdditionalImages []string `json:"additionalImages"`
		Description      string  `json:"description"`
		Bedrooms         int     `json:"bedrooms"`
		Bathrooms        int     `json:"bathrooms"`
		AvailableFrom    int64   `json:"availableFrom"`
		AvailableTo      int64   `json:"availableTo"`
		AuthorID         int64   `json:"authorId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return listing.Listing{}, 0, fmt.Errorf("decode post payload: %w", err)
	}
	return listing.Listing{
		Title:            req.Title,
		Price:            req.Price,
		Location:         req.Location,
		Neighborhood:     req.Neighborhood,
		Coordinates:      listing.Coordinates{Lat: req.Lat, Lng: req.Lng},
		Radius:           req.Radius,
		Type:             listing.PropertyType(req.Type),
		ImageURL:         req.ImageURL,
		AdditionalImages: req.AdditionalImages,
		Description:      req.Description,
		Bedrooms:         req.Bedrooms,
		Bathrooms:        req.Bathrooms,
		AvailableFrom:    req.AvailableFrom,
		AvailableTo:      req.AvailableTo,
	}, req.AuthorID, nil
}

func setSessionCookies(w http.ResponseWriter, userID int64) {
	id := strconv.FormatInt(userID, 10)
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: id, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "r-" + id, Path: "/"})
}
