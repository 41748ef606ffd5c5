package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/roostlabs/roost/internal/listing"
)

// API defines the broker operations the stores depend on. It is implemented
// by *Client and by test fakes.
type API interface {
	Login(ctx context.Context, email, password string) (*listing.User, error)
	Register(ctx context.Context, req RegisterRequest) (*listing.User, error)
	SendVerifyCode(ctx context.Context, email string) error
	Profile(ctx context.Context) (*listing.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	Logout(ctx context.Context) error
	HasSessionCookies() bool
	GoogleLoginURL() string

	FetchPosts(ctx context.Context) ([]listing.Listing, error)
	CreatePost(ctx context.Context, post listing.Listing, authorID int64) (*listing.Listing, error)
	UpdatePost(ctx context.Context, post listing.Listing, authorID int64) (*listing.Listing, error)
	DeletePost(ctx context.Context, id int64, authorID int64) error

	FavoriteIDs(ctx context.Context, userID int64) ([]string, error)
	AddFavorite(ctx context.Context, userID, postID int64) error
	RemoveFavorite(ctx context.Context, userID, postID int64) error
	SyncFavorites(ctx context.Context, userID int64, postIDs []int64) ([]string, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the broker HTTP API. Session cookies set by the auth
// endpoints are kept in a jar and replayed on every request.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	jar       *cookiejar.Jar
	userAgent string
}

const (
	defaultBrokerURL = "http://localhost:8080"
	defaultUserAgent = "roost/0.1"
	requestTimeout   = 10 * time.Second
)

// sessionCookieNames are the cookies the auth service sets on login and
// after an OAuth redirect. Their presence gates the slow hydration path.
var sessionCookieNames = []string{"access_token", "refresh_token"}

// NewClient builds a Client for the given broker base URL.
func NewClient(brokerURL string) (*Client, error) {
	base, err := parseBaseURL(brokerURL)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		jar:       jar,
		userAgent: defaultUserAgent,
	}, nil
}

// HasSessionCookies reports whether the jar holds any session cookie for the
// broker host.
func (c *Client) HasSessionCookies() bool {
	if c == nil || c.jar == nil {
		return false
	}
	for _, ck := range c.jar.Cookies(c.baseURL) {
		for _, name := range sessionCookieNames {
			if ck.Name == name && ck.Value != "" {
				return true
			}
		}
	}
	return false
}

// SessionCookies returns the broker-host cookies for persistence.
func (c *Client) SessionCookies() []*http.Cookie {
	if c == nil || c.jar == nil {
		return nil
	}
	return c.jar.Cookies(c.baseURL)
}

// RestoreSessionCookies loads previously persisted cookies into the jar.
func (c *Client) RestoreSessionCookies(cookies []*http.Cookie) {
	if c == nil || c.jar == nil || len(cookies) == 0 {
		return
	}
	c.jar.SetCookies(c.baseURL, cookies)
}

// APIError is a business error declared by the broker in its response
// envelope, or a transport-level failure with the HTTP status attached.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("broker returned status %d", e.Status)
}

// envelope is the broker's uniform response shape.
type envelope struct {
	Error   bool            `json:"error"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// do issues a request with an optional JSON body and decodes the envelope.
// The returned raw data is nil when the response carried none.
func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.Error || resp.StatusCode >= 400 {
		return nil, &APIError{Message: env.Message, Status: resp.StatusCode}
	}
	return env.Data, nil
}

func parseBaseURL(brokerURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(brokerURL)
	if trimmed == "" {
		trimmed = defaultBrokerURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse broker url %q: %w", brokerURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
