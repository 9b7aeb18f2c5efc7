package session

import (
	"time"
)

// User represents the authenticated platform user.
//
// Role is server-assigned and immutable from the client's perspective;
// the access package maps it to navigation and permissions.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session holds the current user and auth token.
//
// A session is created on login or registration, cleared on logout,
// and read on every protected command. Views and gateways only read it;
// the store owns its lifecycle.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has passed its expiry.
// Sessions without an expiry never expire client-side.
func (s *Session) IsExpired() bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt)
}

// IsValid reports whether the session carries a usable token.
func (s *Session) IsValid() bool {
	return s != nil && s.Token != "" && !s.IsExpired()
}
