package types

import "time"

// User is the account that owns a link collection.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	Name      string     `json:"name,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
	Theme     string     `json:"theme,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// PublicProfile is the anonymous view of a user's page: the user's public
// fields plus their active links in display order.
type PublicProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Theme    string `json:"theme,omitempty"`
	Links    []Link `json:"links"`
}

// ProfileHit is one profile search result: public user fields with an
// aggregate link count.
type ProfileHit struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Count    struct {
		Links int `json:"links"`
	} `json:"_count"`
}

// ClickResult is returned when a public link click is tracked; it carries
// the destination so the caller can open it.
type ClickResult struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}
