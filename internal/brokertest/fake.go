package brokertest

import (
	"context"
	"strconv"
	"sync"

	"github.com/roostlabs/roost/internal/broker"
	"github.com/roostlabs/roost/internal/listing"
)

// Fake implements broker.API with per-method function fields, so tests can
// script responses without a network. Unset methods succeed with zero
// values. Call counts are tracked for assertions.
type Fake struct {
	mu    sync.Mutex
	calls map[string]int

	LoginFn          func(ctx context.Context, email, password string) (*listing.User, error)
	RegisterFn       func(ctx context.Context, req broker.RegisterRequest) (*listing.User, error)
	SendVerifyCodeFn func(ctx context.Context, email string) error
	ProfileFn        func(ctx context.Context) (*listing.User, error)
	ForgotPasswordFn func(ctx context.Context, email string) error
	ResetPasswordFn  func(ctx context.Context, email, code, newPassword string) error
	LogoutFn         func(ctx context.Context) error
	HasCookies       bool

	FetchPostsFn func(ctx context.Context) ([]listing.Listing, error)
	CreatePostFn func(ctx context.Context, post listing.Listing, authorID int64) (*listing.Listing, error)
	UpdatePostFn func(ctx context.Context, post listing.Listing, authorID int64) (*listing.Listing, error)
	DeletePostFn func(ctx context.Context, id int64, authorID int64) error

	FavoriteIDsFn    func(ctx context.Context, userID int64) ([]string, error)
	AddFavoriteFn    func(ctx context.Context, userID, postID int64) error
	RemoveFavoriteFn func(ctx context.Context, userID, postID int64) error
	SyncFavoritesFn  func(ctx context.Context, userID int64, postIDs []int64) ([]string, error)
}

var _ broker.API = (*Fake)(nil)

// Calls returns how many times the named method ran.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *Fake) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
}

func (f *Fake) Login(ctx context.Context, email, password string) (*listing.User, error) {
	f.record("Login")
	if f.LoginFn != nil {
		return f.LoginFn(ctx, email, password)
	}
	return &listing.User{Email: email}, nil
}

func (f *Fake) Register(ctx context.Context, req broker.RegisterRequest) (*listing.User, error) {
	f.record("Register")
	if f.RegisterFn != nil {
		return f.RegisterFn(ctx, req)
	}
	return &listing.User{Email: req.Email, FirstName: req.FirstName, LastName: req.LastName}, nil
}

func (f *Fake) SendVerifyCode(ctx context.Context, email string) error {
	f.record("SendVerifyCode")
	if f.SendVerifyCodeFn != nil {
		return f.SendVerifyCodeFn(ctx, email)
	}
	return nil
}

func (f *Fake) Profile(ctx context.Context) (*listing.User, error) {
	f.record("Profile")
	if f.ProfileFn != nil {
		return f.ProfileFn(ctx)
	}
	return &listing.User{}, nil
}

func (f *Fake) ForgotPassword(ctx context.Context, email string) error {
	f.record("ForgotPassword")
	if f.ForgotPasswordFn != nil {
		return f.ForgotPasswordFn(ctx, email)
	}
	return nil
}

func (f *Fake) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	f.record("ResetPassword")
	if f.ResetPasswordFn != nil {
		return f.ResetPasswordFn(ctx, email, code, newPassword)
	}
	return nil
}

func (f *Fake) Logout(ctx context.Context) error {
	f.record("Logout")
	if f.LogoutFn != nil {
		return f.LogoutFn(ctx)
	}
	return nil
}

func (f *Fake) HasSessionCookies() bool {
	return f.HasCookies
}

func (f *Fake) GoogleLoginURL() string {
	return "http://fake-broker/oauth/google/login"
}

func (f *Fake) FetchPosts(ctx context.Context) ([]listing.Listing, error) {
	f.record("FetchPosts")
	if f.FetchPostsFn != nil {
		return f.FetchPostsFn(ctx)
	}
	return nil, nil
}

func (f *Fake) CreatePost(ctx context.Context, post listing.Listing, authorID int64) (*listing.Listing, error) {
	f.record("CreatePost")
	if f.CreatePostFn != nil {
		return f.CreatePostFn(ctx, post, authorID)
	}
	return &post, nil
}

func (f *Fake) UpdatePost(ctx context.Context, post listing.Listing, authorID int64) (*listing.Listing, error) {
	f.record("UpdatePost")
	if f.UpdatePostFn != nil {
		return f.UpdatePostFn(ctx, post, authorID)
	}
	return &post, nil
}

func (f *Fake) DeletePost(ctx context.Context, id int64, authorID int64) error {
	f.record("DeletePost")
	if f.DeletePostFn != nil {
		return f.DeletePostFn(ctx, id, authorID)
	}
	return nil
}

func (f *Fake) FavoriteIDs(ctx context.Context, userID int64) ([]string, error) {
	f.record("FavoriteIDs")
	if f.FavoriteIDsFn != nil {
		return f.FavoriteIDsFn(ctx, userID)
	}
	return nil, nil
}

func (f *Fake) AddFavorite(ctx context.Context, userID, postID int64) error {
	f.record("AddFavorite")
	if f.AddFavoriteFn != nil {
		return f.AddFavoriteFn(ctx, userID, postID)
	}
	return nil
}

func (f *Fake) RemoveFavorite(ctx context.Context, userID, postID int64) error {
	f.record("RemoveFavorite")
	if f.RemoveFavoriteFn != nil {
		return f.RemoveFavoriteFn(ctx, userID, postID)
	}
	return nil
}

func (f *Fake) SyncFavorites(ctx context.Context, userID int64, postIDs []int64) ([]string, error) {
	f.record("SyncFavorites")
	if f.SyncFavoritesFn != nil {
		return f.SyncFavoritesFn(ctx, userID, postIDs)
	}
	ids := make([]string, 0, len(postIDs))
	for _, id := range postIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	return ids, nil
}
