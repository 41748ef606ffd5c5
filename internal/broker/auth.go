package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/roostlabs/roost/internal/listing"
)

// RegisterRequest carries the buffered sign-up fields plus the emailed code.
type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	VerificationCode string `json:"verification_code"`
}

// Login authenticates with email and password. On success the broker sets
// session cookies, which the client jar captures.
func (c *Client) Login(ctx context.Context, email, password string) (*listing.User, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return decodeUser(data)
}

// Register completes sign-up with the verification code.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*listing.User, error) {
	data, err := c.do(ctx, http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	return decodeUser(data)
}

// SendVerifyCode asks the broker to email a verification code. Used by both
// the initial send and the resend action.
func (c *Client) SendVerifyCode(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/verify-email", map[string]string{"email": email})
	return err
}

// Profile fetches the current user using the session cookies.
func (c *Client) Profile(ctx context.Context) (*listing.User, error) {
	data, err := c.do(ctx, http.MethodGet, "/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	return decodeUser(data)
}

// ForgotPassword asks the broker to email a reset code.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email})
	return err
}

// ResetPassword commits a new password using the emailed reset code.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/reset-password", map[string]string{
		"email":             email,
		"verification_code": code,
		"new_password":      newPassword,
	})
	return err
}

// Logout invalidates the session server-side.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil)
	return err
}

// GoogleLoginURL returns the URL a browser should open to start the Google
// OAuth flow. The redirect lands back on the broker, which sets cookies.
func (c *Client) GoogleLoginURL() string {
	return c.baseURL.String() + "/oauth/google/login"
}

func decodeUser(data json.RawMessage) (*listing.User, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("response carried no user")
	}
	var u listing.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}
