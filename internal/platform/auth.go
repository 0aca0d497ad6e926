package platform

import (
	"context"
	"net/http"

	"github.com/felixgeelhaar/tourney/internal/domain"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges email and password for a bearer credential and the
// authenticated user. It is never retried.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	var token domain.Token
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   LoginRequest{Email: email, Password: password},
	}, &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// WhoAmI looks up the user that owns credential.
func (c *Client) WhoAmI(ctx context.Context, credential string) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, call{
		method:     http.MethodGet,
		path:       "/auth/me",
		credential: credential,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCurrentUser looks up the user of the attached token source
func (c *Client) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	user, err := get[domain.User](ctx, c, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
