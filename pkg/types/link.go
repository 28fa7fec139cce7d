package types

import (
	"net/url"
	"strings"
	"time"
)

// Link is a single entry in a user's collection.
type Link struct {
	// ID is server-assigned, stable and immutable.
	ID string `json:"id"`

	// Title is the display text (required, non-empty).
	Title string `json:"title"`

	// URL is the absolute destination URL.
	URL string `json:"url"`

	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`

	// Position is the zero-based display index. Positions are unique and
	// dense from 0..n-1 within one owner's collection; the server assigns
	// final values after a reorder.
	Position int `json:"position"`

	IsActive bool `json:"isActive"`

	// Clicks is maintained by the server and never decreases. Read-only
	// from the client's perspective.
	Clicks int `json:"clicks"`

	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Matches reports whether the search text is a case-insensitive substring
// of the link's title, description or URL. An empty query matches all.
func (l Link) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(l.Title), q) ||
		strings.Contains(strings.ToLower(l.Description), q) ||
		strings.Contains(strings.ToLower(l.URL), q)
}

// NormalizeURL validates a destination URL, prefixing https:// when the
// scheme is missing so bare domains like "instagram.com/me" are accepted.
// Returns ErrInvalidURL when the input does not parse as an absolute URL
// after normalization.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || strings.ContainsAny(u.Host, " ") {
		return "", ErrInvalidURL
	}
	return raw, nil
}
