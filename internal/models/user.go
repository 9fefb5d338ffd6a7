package models

import "time"

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleNonAdmin UserRole = "nonadmin"
)

type User struct {
	ID             string
	Username       string
	Email          string
	PasswordSalt   string
	PasswordDigest string
	Role           UserRole
	FirstName      string
	LastName       string
	Country        string
	AboutMe        string
	DOB            string
	ContactNumber  string
	CreatedAt      time.Time
}

// Session is one login event. The bearer token itself is never stored, only
// its SHA-256 digest.
type Session struct {
	ID          string
	UserID      string
	TokenHash   []byte
	IssuedAt    time.Time
	ExpiresAt   time.Time
	LoggedOutAt *time.Time
}

// SignedOut reports whether the session was explicitly ended. Once set,
// LoggedOutAt is never cleared.
func (s Session) SignedOut() bool {
	return s.LoggedOutAt != nil
}

// Expired reports whether now is at or past ExpiresAt. Expiry is derived at
// read time and never persisted as a state of its own.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Active is true while the session is neither signed out nor expired.
func (s Session) Active(now time.Time) bool {
	return !s.SignedOut() && !s.Expired(now)
}
