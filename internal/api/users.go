package api

import (
	"context"
	"net/http"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (types.User, error) {
	var out types.User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &out)
	return out, err
}

// UpdateMe applies a profile patch to the authenticated user.
func (c *Client) UpdateMe(ctx context.Context, patch types.UserPatch) (types.User, error) {
	var out types.User
	err := c.do(ctx, http.MethodPatch, "/users/me", nil, patch, &out)
	return out, err
}
