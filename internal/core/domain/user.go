package domain

import "time"

// User is an account record held by the auth backend. It never leaves the
// backend adapter; clients only see the derived Identity.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity returns the client-facing view of the account.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}
