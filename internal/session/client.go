// Package session asks the external auth origin who the visitor is.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/ridegear-backend/pkg/errors"
	"github.com/angelmondragon/ridegear-backend/pkg/logger"
)

const (
	defaultOrigin         = "http://localhost:8000"
	defaultTimeout        = 5 * time.Second
	responseBodyReadLimit = 1024
	loginSuccessPath      = "/login/success"
	loginCallbackPath     = "/auth/google/callback"
	logoutPath            = "/logout"
)

// User is the profile the auth origin returns. Raw keeps the full object.
type User struct {
	ID          string          `json:"id,omitempty"`
	DisplayName string          `json:"displayName,omitempty"`
	Email       string          `json:"email,omitempty"`
	Image       string          `json:"image,omitempty"`
	Raw         json.RawMessage `json:"-"`
}

// State is what the storefront knows about the visitor.
type State struct {
	LoggedIn bool  `json:"logged_in"`
	User     *User `json:"user,omitempty"`
}

// MarshalJSON emits the profile exactly as the origin sent it.
func (u User) MarshalJSON() ([]byte, error) {
	if len(u.Raw) > 0 {
		return u.Raw, nil
	}
	type plain User
	return json.Marshal(plain(u))
}

// LoggedOut is the state reported whenever the origin cannot vouch for a user.
func LoggedOut() State {
	return State{}
}

type Client struct {
	httpClient *http.Client
	origin     string
	timeout    time.Duration
	logg       *logger.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds each call to the origin.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		if logg != nil {
			c.logg = logg
		}
	}
}

// NewClient builds a client for the auth origin, e.g. http://localhost:8000.
func NewClient(origin string, opts ...Option) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(origin), "/")
	if trimmed == "" {
		trimmed = defaultOrigin
	}
	client := &Client{
		origin:     trimmed,
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		logg:       logger.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// LoginURL is where the browser is sent to sign in.
func (c *Client) LoginURL() string {
	return c.origin + loginCallbackPath
}

// LogoutURL is where the browser is sent to sign out.
func (c *Client) LogoutURL() string {
	return c.origin + logoutPath
}

// CurrentUser forwards the visitor's cookies to the origin. Any failure is
// logged and reported as logged out.
func (c *Client) CurrentUser(ctx context.Context, cookies []*http.Cookie) State {
	user, err := c.fetchUser(ctx, cookies)
	if err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "session lookup failed, treating visitor as logged out")
		return LoggedOut()
	}
	if user == nil {
		return LoggedOut()
	}
	return State{LoggedIn: true, User: user}
}

func (c *Client) fetchUser(ctx context.Context, cookies []*http.Cookie) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.origin+loginSuccessPath, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build session request")
	}
	req.Header.Set("Accept", "application/json")
	for _, cookie := range cookies {
		if cookie != nil {
			req.AddCookie(cookie)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute session request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "session request failed")
	}

	var payload struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode session response")
	}
	raw := strings.TrimSpace(string(payload.User))
	if raw == "" || raw == "null" || raw == "{}" {
		return nil, nil
	}

	var user User
	if err := json.Unmarshal(payload.User, &user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode session user")
	}
	user.Raw = payload.User
	return &user, nil
}
