package api

import (
	"context"
	"net/http"

	"github.com/higuga/higuga/internal/model"
)

// FetchCSRF obtains an anti-forgery token and pins it to every following
// request, the way the browser client primed its default headers.
func (c *Client) FetchCSRF(ctx context.Context) error {
	var resp csrfResponse
	if err := c.doJSON(ctx, http.MethodGet, "/sessions/csrf-token", nil, nil, &resp); err != nil {
		return err
	}
	c.mu.Lock()
	c.csrf = resp.CSRFToken
	c.mu.Unlock()
	return nil
}

// SignIn exchanges credentials for the user record and a bearer token. The
// caller decides what to persist; the client keeps nothing on its own.
func (c *Client) SignIn(ctx context.Context, email, password string) (model.User, string, error) {
	if err := c.FetchCSRF(ctx); err != nil {
		return model.User{}, "", err
	}
	body := map[string]string{"email": email, "password": password}
	var resp sessionResponse
	if err := c.doJSON(ctx, http.MethodPost, pathSessions, nil, body, &resp); err != nil {
		return model.User{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/sessions/logout", nil, nil, nil)
}

// CheckToken re-validates the current session and returns the server's view
// of the admin flag.
func (c *Client) CheckToken(ctx context.Context) (isAdmin bool, err error) {
	if err := c.FetchCSRF(ctx); err != nil {
		return false, err
	}
	var resp checkTokenResponse
	if err := c.doJSON(ctx, http.MethodGet, "/sessions/check-token", nil, nil, &resp); err != nil {
		return false, err
	}
	return resp.IsAdmin, nil
}

// ForgotPassword starts the reset flow for an email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/password/forgot", nil, map[string]string{"email": email}, nil)
}

// ResetPassword completes the reset flow with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, password, confirmation string) error {
	body := map[string]string{
		"token":                 token,
		"password":              password,
		"password_confirmation": confirmation,
	}
	return c.doJSON(ctx, http.MethodPost, "/password/reset", nil, body, nil)
}
