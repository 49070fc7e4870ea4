package domain

import "errors"

// Client-facing failure modes. The HTTP layer maps these to status codes and
// messages in pkg/util/errorutil.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("user or password incorrect")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidCode        = errors.New("code invalid")
	ErrCodeExpired        = errors.New("code expired")
	ErrInvalidToken       = errors.New("token invalid")
	ErrTokenExpired       = errors.New("token expired")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrCategoryExists     = errors.New("category already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrSlugTaken          = errors.New("slug already in use")
)
