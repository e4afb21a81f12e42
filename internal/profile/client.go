// Package profile is the typed HTTP client for the user-profile
// collaborator service, which owns credentials and the server-side copy
// of each user's recent searches.
package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrUserExists   = errSentinel("user with this id already exists")
	ErrUserNotFound = errSentinel("user not found")
)

type errSentinel string

func (e errSentinel) Error() string { return string(e) }

// Client talks to the profile service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a profile client. timeout bounds every call.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type createUserRequest struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type errorBody struct {
	Error string `json:"error"`
}

// CreateUser registers a new user record keyed by the derived id.
func (c *Client) CreateUser(ctx context.Context, id int64, username, password string) error {
	payload, err := json.Marshal(createUserRequest{ID: id, Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("encode create user: %w", err)
	}

	url := c.baseURL + "/users/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create user request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("profile service: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return ErrUserExists
	default:
		return fmt.Errorf("profile service: create user status %d", resp.StatusCode)
	}
}

// GetUsername fetches the stored username for the given user id.
func (c *Client) GetUsername(ctx context.Context, id int64) (string, error) {
	return c.getText(ctx, fmt.Sprintf("%s/users/%d/username", c.baseURL, id))
}

// GetPassword fetches the stored password for the given user id. The
// profile service stores and returns it in the clear; the equality check
// done with it is the inherited toy credential model.
func (c *Client) GetPassword(ctx context.Context, id int64) (string, error) {
	return c.getText(ctx, fmt.Sprintf("%s/users/%d/password", c.baseURL, id))
}

func (c *Client) getText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("profile request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrUserNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("profile service: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("profile service: read body: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}
