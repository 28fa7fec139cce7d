package api

import (
	"context"
	"net/http"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

// Register creates an account and returns the access token with the new
// user. Local form validation is the caller's responsibility.
func (c *Client) Register(ctx context.Context, form types.RegisterForm) (types.AuthResponse, error) {
	var out types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, form, &out)
	return out, err
}

// Login exchanges credentials for an access token and user snapshot.
func (c *Client) Login(ctx context.Context, form types.LoginForm) (types.AuthResponse, error) {
	var out types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, form, &out)
	return out, err
}
