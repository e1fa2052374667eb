package api

import (
	"context"
	"net/http"
)

const (
	pathLogin   = "/auth/login"
	pathLogout  = "/auth/logout"
	pathRefresh = "/auth/refresh"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type LoginResult struct {
	AccessToken string   `json:"accessToken"`
	User        AuthUser `json:"user"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	err := c.Do(ctx, http.MethodPost, pathLogin, LoginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout invalidates the token server-side. Best effort; the caller
// clears local state regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, pathLogout, nil, nil)
}

type refreshResult struct {
	AccessToken string `json:"accessToken"`
}

// Refresh asks the backend for a fresh access token.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	var res refreshResult
	if err := c.Do(ctx, http.MethodPost, pathRefresh, nil, &res); err != nil {
		return "", err
	}
	return res.AccessToken, nil
}
