package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserProfile is the signed-in account as reported by the sandbox API.
type UserProfile struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Verified bool   `json:"isVerified"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *UserProfile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Session holds the sandbox bearer token and the profile fetched with it.
type Session struct {
	ID        string       `json:"id"`
	Token     string       `json:"token"`
	Profile   *UserProfile `json:"profile,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
