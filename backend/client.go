// Package backend is the REST client for the sandbox API's auth and user
// management endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dpiportal/models"

	"github.com/pkg/errors"
)

// APIError is a non-2xx reply from the sandbox API.
type APIError struct {
	Status  int
	Body    []byte
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// SignInResult is what the sandbox returns for valid credentials.
type SignInResult struct {
	Token   string              `json:"access_token"`
	Profile *models.UserProfile `json:"user,omitempty"`
}

// Client is the subset of the sandbox API the portal drives.
type Client interface {
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	GetProfile(ctx context.Context, token string) (*models.UserProfile, error)

	ListUsers(ctx context.Context, token string) ([]models.AdminUser, error)
	CreateUser(ctx context.Context, token string, in models.AdminUserInput) (*models.AdminUser, error)
	UpdateUser(ctx context.Context, token string, id int, in models.AdminUserInput) (*models.AdminUser, error)
	DeleteUser(ctx context.Context, token string, id int) error
	ActivateUser(ctx context.Context, token string, id int) error
	DeactivateUser(ctx context.Context, token string, id int) error
	ResetPassword(ctx context.Context, token string, id int, password string) error
}

// HTTPClient talks to the sandbox over HTTP.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPClient returns a client rooted at baseURL (e.g. https://host/api/v1).
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: &http.Client{}}
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "marshal request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: data, Message: messageFrom(data)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, path)
	}
	return nil
}

// SignIn exchanges credentials for a bearer token.
func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	var out SignInResult
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", in, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, errors.New("sign-in response carried no token")
	}
	return &out, nil
}

// GetProfile fetches the account behind token.
func (c *HTTPClient) GetProfile(ctx context.Context, token string) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns every account. Both a bare array and {"data": [...]} are accepted.
func (c *HTTPClient) ListUsers(ctx context.Context, token string) ([]models.AdminUser, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/admin/users", token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeUserList(raw)
}

func decodeUserList(raw json.RawMessage) ([]models.AdminUser, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []models.AdminUser{}, nil
	}
	var users []models.AdminUser
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &users); err != nil {
			return nil, errors.Wrap(err, "decode user list")
		}
		return users, nil
	}
	var wrapped struct {
		Data []models.AdminUser `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, errors.Wrap(err, "decode user list")
	}
	if wrapped.Data == nil {
		wrapped.Data = []models.AdminUser{}
	}
	return wrapped.Data, nil
}

// CreateUser registers a new account.
func (c *HTTPClient) CreateUser(ctx context.Context, token string, in models.AdminUserInput) (*models.AdminUser, error) {
	var out models.AdminUser
	if err := c.do(ctx, http.MethodPost, "/admin/users", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser patches an account.
func (c *HTTPClient) UpdateUser(ctx context.Context, token string, id int, in models.AdminUserInput) (*models.AdminUser, error) {
	var out models.AdminUser
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d", id), token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account.
func (c *HTTPClient) DeleteUser(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), token, nil, nil)
}

// ActivateUser re-enables an account.
func (c *HTTPClient) ActivateUser(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/users/%d/activate", id), token, nil, nil)
}

// DeactivateUser disables an account.
func (c *HTTPClient) DeactivateUser(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/users/%d/deactivate", id), token, nil, nil)
}

// ResetPassword sets a new password on an account.
func (c *HTTPClient) ResetPassword(ctx context.Context, token string, id int, password string) error {
	in := map[string]string{"password": password}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/users/%d/reset-password", id), token, in, nil)
}
