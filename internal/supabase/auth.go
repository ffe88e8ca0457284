package supabase

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// AuthUser is the identity record issued by the auth API. The ID is an
// opaque string owned by the remote service.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthSession is the result of a successful password sign-in.
type AuthSession struct {
	AccessToken string   `json:"access_token"`
	User        AuthUser `json:"user"`
}

// SignUp creates a new identity. Profile creation is handled by a
// database trigger on the remote side, not by this client. A duplicate
// account yields ErrDuplicateEmail.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*AuthUser, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	body, err := encodeBody(map[string]any{
		"email":    email,
		"password": password,
		"data":     metadata,
	})
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/signup", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var user AuthUser
	if err := c.do(req, &user); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Message), "already registered") {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &user, nil
}

// SignInWithPassword authenticates an email/password pair. Every
// rejection maps to ErrInvalidCredentials so callers cannot tell an
// unknown email from a wrong password.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*AuthSession, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	body, err := encodeBody(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var session AuthSession
	if err := c.do(req, &session); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusUnprocessableEntity) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return &session, nil
}

// SignOut revokes the given access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	return c.do(req, nil)
}

// AdminCreateUser creates a pre-confirmed identity. Requires the
// service-role key; with the anon key the auth API rejects the call.
func (c *Client) AdminCreateUser(ctx context.Context, email, password string) (*AuthUser, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	body, err := encodeBody(map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	})
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/admin/users", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var user AuthUser
	if err := c.do(req, &user); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Message), "already") {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &user, nil
}

// AdminDeleteUser removes an identity. The remote foreign keys cascade
// the deletion to the profile and its posts.
func (c *Client) AdminDeleteUser(ctx context.Context, id string) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}

	req, err := c.newRequest(ctx, http.MethodDelete, "/auth/v1/admin/users/"+id, nil)
	if err != nil {
		return err
	}

	return c.do(req, nil)
}
