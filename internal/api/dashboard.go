package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

// DashboardStats returns aggregate usage counters for the owner.
func (c *Client) DashboardStats(ctx context.Context) (types.DashboardStats, error) {
	var out types.DashboardStats
	err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, nil, &out)
	return out, err
}

// DashboardActivity returns the most recent visitor events, newest first.
func (c *Client) DashboardActivity(ctx context.Context, limit int) ([]types.Analytics, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var out []types.Analytics
	if err := c.do(ctx, http.MethodGet, "/dashboard/activity", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
