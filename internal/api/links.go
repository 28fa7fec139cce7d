package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

// Links returns the authenticated user's links in display order.
func (c *Client) Links(ctx context.Context, includeInactive bool) ([]types.Link, error) {
	query := url.Values{"includeInactive": {strconv.FormatBool(includeInactive)}}
	var out []types.Link
	if err := c.do(ctx, http.MethodGet, "/links", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateLink appends a new link at the end of the collection. The server
// assigns the id and position.
func (c *Client) CreateLink(ctx context.Context, draft types.LinkDraft) (types.Link, error) {
	var out types.Link
	err := c.do(ctx, http.MethodPost, "/links", nil, draft, &out)
	return out, err
}

// UpdateLink applies a field patch to one link.
func (c *Client) UpdateLink(ctx context.Context, id string, patch types.LinkPatch) (types.Link, error) {
	var out types.Link
	err := c.do(ctx, http.MethodPatch, "/links/"+url.PathEscape(id), nil, patch, &out)
	return out, err
}

// DeleteLink removes a link from the collection.
func (c *Client) DeleteLink(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/links/"+url.PathEscape(id), nil, nil, nil)
}

// reorderRequest is the payload for the batch reorder endpoint.
type reorderRequest struct {
	LinkIDs []string `json:"linkIds"`
}

// ReorderLinks submits the ordered id list verbatim. The server is the
// tie-breaking authority for final position values, and may receive a
// subset of the collection when a local filter was active.
func (c *Client) ReorderLinks(ctx context.Context, ids []string) error {
	return c.do(ctx, http.MethodPatch, "/links/reorder", nil, reorderRequest{LinkIDs: ids}, nil)
}
