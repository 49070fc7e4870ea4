package domain

import "time"

// User is the domain model for menu-admin accounts.
type User struct {
	ID            string
	Name          string
	Email         string
	Image         string
	PasswordHash  string
	EmailVerified *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsEmailVerified reports whether the account completed email confirmation.
func (u *User) IsEmailVerified() bool {
	return u != nil && u.EmailVerified != nil
}
