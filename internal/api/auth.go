package api

import (
	"context"
	"net/http"
)

const profilePath = "/auth/profile"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token pair. A 401 here is a bad
// credential, not a session expiry, so it never triggers forced logout.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var pair TokenPair
	if err := c.do(ctx, http.MethodPost, loginPath, nil, loginRequest{Email: email, Password: password}, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Profile fetches the logged-in user's profile using the session token.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, profilePath, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
