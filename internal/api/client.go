// Package api provides the HTTP client for the item catalog and auth
// endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Amreshcodee/itemhub/internal/model"
)

// DefaultTimeout bounds any single API request.
const DefaultTimeout = 10 * time.Second

// Client talks to the ItemHub API. The session cookie set by login/register
// lives in the client's cookie jar and is attached to every subsequent
// request, so callers never handle credentials after authentication.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

// New creates a Client for the API at baseURL (scheme://host[:port]).
func New(baseURL string, logger *zap.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: base URL must not be empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("api: parsing base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: creating cookie jar: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: baseURL,
		httpc: &http.Client{
			Jar:     jar,
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}, nil
}

// ListItems fetches the item collection, optionally filtered. An empty
// search means "no filter, fetch all" and sends no query parameter at all.
func (c *Client) ListItems(ctx context.Context, search string) ([]model.Item, error) {
	path := "/api/items/"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	var items []model.Item
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem creates a new item and returns the server's record of it.
func (c *Client) CreateItem(ctx context.Context, item model.Item) (*model.Item, error) {
	var created model.Item
	if err := c.do(ctx, http.MethodPost, "/api/items/", item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateItem replaces the item with the given id.
func (c *Client) UpdateItem(ctx context.Context, id string, item model.Item) (*model.Item, error) {
	var updated model.Item
	path := "/api/items/" + url.PathEscape(id) + "/"
	if err := c.do(ctx, http.MethodPut, path, item, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteItem removes the item with the given id.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	path := "/api/items/" + url.PathEscape(id) + "/"
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// loginRequest is the JSON body for login and register.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(ctx context.Context, username, password string) (*model.User, error) {
	var user model.User
	body := loginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/login/", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account. The server logs the new user in as part of
// registration, so the session cookie is set on success.
func (c *Client) Register(ctx context.Context, username, password string) (*model.User, error) {
	var user model.User
	body := loginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/register/", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout/", nil, nil)
}

// CurrentUser returns the authenticated user. Without a valid session
// cookie the error matches model.ErrUnauthenticated.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/user/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// do sends one request and decodes the response into out (when out is
// non-nil). Any non-2xx status yields a *model.APIError carrying the
// server's message, or ErrUnauthenticated for a 401 without one.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encoding request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	c.logger.Debug("request complete",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decoding response: %w", err)
	}
	return nil
}

// errorFrom turns a non-2xx response into a *model.APIError. The body's
// message is preserved so credential failures can be shown on the relevant
// form; 401s match model.ErrUnauthenticated under errors.Is.
func (c *Client) errorFrom(resp *http.Response) error {
	var er model.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&er)

	return &model.APIError{
		StatusCode: resp.StatusCode,
		Message:    er.Message,
	}
}
