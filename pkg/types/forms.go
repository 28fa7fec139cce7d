package types

import "regexp"

// LinkDraft is the payload for creating a link.
type LinkDraft struct {
	Title       string `json:"title" validate:"required"`
	URL         string `json:"url" validate:"required"`
	Description string `json:"description,omitempty" validate:"max=500"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
}

// LinkPatch is a partial update of a link. Nil fields are left untouched
// by the server.
type LinkPatch struct {
	Title       *string `json:"title,omitempty"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// LoginForm is the payload for password login.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterForm is the payload for account creation. ConfirmPassword is
// checked locally and never sent.
type RegisterForm struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
	Name            string `json:"name,omitempty"`
}

// usernamePattern restricts usernames to URL-safe characters, since the
// username doubles as the public profile path.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Validate applies the checks that run before a register request is made.
func (f RegisterForm) Validate() error {
	if f.Email == "" {
		return ErrEmailRequired
	}
	if f.Password == "" {
		return ErrPasswordRequired
	}
	if len(f.Password) < 6 {
		return ErrPasswordTooShort
	}
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(f.Username) < 3 {
		return ErrUsernameTooShort
	}
	if !usernamePattern.MatchString(f.Username) {
		return ErrUsernameInvalid
	}
	return nil
}

// UserPatch is a partial update of the current user's profile.
type UserPatch struct {
	Name   *string `json:"name,omitempty"`
	Bio    *string `json:"bio,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
	Theme  *string `json:"theme,omitempty"`
}
