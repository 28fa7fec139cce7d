package types

import "errors"

// Validation errors. These are raised locally, before any request is made,
// and are surfaced at the field or form level.
var (
	ErrTitleRequired    = errors.New("title must not be empty")
	ErrInvalidURL       = errors.New("url must be an absolute URL")
	ErrEmailRequired    = errors.New("email must not be empty")
	ErrPasswordRequired = errors.New("password must not be empty")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrUsernameInvalid  = errors.New("username may only contain letters, digits, underscore and hyphen")
)

// Session and lookup errors.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrProfileNotFound  = errors.New("profile not found")
)
