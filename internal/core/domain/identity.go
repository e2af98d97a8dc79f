package domain

import "time"

// Identity is the authenticated user as seen by the client: an opaque id and
// the email the account was registered with.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the credential bundle issued by the auth backend. It stays
// associated with exactly one Identity while valid.
type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Identity    Identity  `json:"identity"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}

// AuthEvent names a session lifecycle transition reported by the backend.
type AuthEvent string

const (
	AuthEventSignedIn     AuthEvent = "SIGNED_IN"
	AuthEventSignedOut    AuthEvent = "SIGNED_OUT"
	AuthEventTokenExpired AuthEvent = "TOKEN_EXPIRED"
)

// SessionChange is a single notification from the backend's auth-state
// stream. Session is nil for sign-out and expiry.
type SessionChange struct {
	Event   AuthEvent
	Session *Session
}
