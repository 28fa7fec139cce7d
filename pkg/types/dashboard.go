package types

import "time"

// DashboardStats aggregates usage counters for the owner's dashboard.
type DashboardStats struct {
	TotalLinks   int       `json:"totalLinks"`
	ActiveLinks  int       `json:"activeLinks"`
	TotalClicks  int       `json:"totalClicks"`
	RecentClicks int       `json:"recentClicks"`
	TopLinks     []TopLink `json:"topLinks"`
	GrowthRate   float64   `json:"growthRate"`
}

// TopLink is a dashboard row for one of the most-clicked links.
type TopLink struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Clicks int    `json:"clicks"`
	Icon   string `json:"icon,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Analytics event kinds.
const (
	EventClick = "click"
	EventView  = "view"
	EventShare = "share"
)

// Analytics is one recorded visitor event.
type Analytics struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	LinkID    string    `json:"linkId,omitempty"`
	Country   string    `json:"country,omitempty"`
	City      string    `json:"city,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
