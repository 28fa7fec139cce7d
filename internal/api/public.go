package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

// PublicProfile returns the anonymous view of a user's page. An unknown
// username yields types.ErrProfileNotFound, which callers render as a
// dedicated state rather than a generic error.
func (c *Client) PublicProfile(ctx context.Context, username string) (types.PublicProfile, error) {
	var out types.PublicProfile
	err := c.do(ctx, http.MethodGet, "/public/profile/"+url.PathEscape(username), nil, nil, &out)
	if IsNotFound(err) {
		return types.PublicProfile{}, fmt.Errorf("%w: %s", types.ErrProfileNotFound, username)
	}
	return out, err
}

// TrackClick records a public click and returns the destination so the
// caller can open it.
func (c *Client) TrackClick(ctx context.Context, linkID string) (types.ClickResult, error) {
	var out types.ClickResult
	err := c.do(ctx, http.MethodPost, "/public/link/"+url.PathEscape(linkID)+"/click", nil, nil, &out)
	return out, err
}

// SearchProfiles searches public profiles by the committed query string.
func (c *Client) SearchProfiles(ctx context.Context, query string, limit int) ([]types.ProfileHit, error) {
	q := url.Values{"q": {query}, "limit": {strconv.Itoa(limit)}}
	var out []types.ProfileHit
	if err := c.do(ctx, http.MethodGet, "/public/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
