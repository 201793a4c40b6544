package api

import "context"

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the login response: a bearer token plus the identity.
type LoginResult struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// Login exchanges credentials for a bearer token and identity.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, "auth.login", "POST", "/api/auth/login", creds, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// Me resolves the current identity. The admin endpoint is preferred;
// any failure there falls back to the generic auth endpoint.
func (c *Client) Me(ctx context.Context) (AuthUser, error) {
	var envelope struct {
		User AuthUser `json:"user"`
	}
	if err := c.do(ctx, "auth.me", "GET", "/api/admin/me", nil, &envelope); err == nil {
		return envelope.User, nil
	}
	if err := c.do(ctx, "auth.me", "GET", "/api/auth/me", nil, &envelope); err != nil {
		return AuthUser{}, err
	}
	return envelope.User, nil
}
