// Package api implements a typed HTTP client for the CoachBase server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dbelyaev/coachbase/internal/server/models"
)

// TokenSource supplies the bearer token for authenticated requests.
// An empty string means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client talks JSON over HTTP to the CoachBase server.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewClient returns a Client for the server at baseURL. tokens may be nil
// for a client that only performs unauthenticated calls.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// AuthResponse is the server reply to register and login requests.
type AuthResponse struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Register creates a new account and returns the issued token and profile.
func (c *Client) Register(ctx context.Context, email, password, name string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register",
		credentialsRequest{Email: email, Password: password, Name: name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		credentialsRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout tells the server to clear its token cookie. Token invalidation is
// client-side, so a failure here is not fatal to signing out locally.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*models.PublicUser, error) {
	var out models.PublicUser
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUsers lists all users.
func (c *Client) GetUsers(ctx context.Context) ([]models.PublicUser, error) {
	var out []models.PublicUser
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id int64) (*models.PublicUser, error) {
	var out models.PublicUser
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update to the user with the given id.
func (c *Client) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.PublicUser, error) {
	var out models.PublicUser
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes the user with the given id.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
			apiErr.Message = er.Error
		}
		return fmt.Errorf("%s %s: %w", method, path, apiErr)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
