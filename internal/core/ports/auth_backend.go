package ports

import (
	"context"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// SessionChangeFunc receives auth-state notifications from the backend.
type SessionChangeFunc func(change domain.SessionChange)

// Subscription is the handle returned when registering for session changes.
// Unsubscribe must be safe to call more than once; after the first call the
// callback never fires again.
type Subscription interface {
	Unsubscribe()
}

// AuthBackend is the hosted authentication provider as consumed by the
// session module.
type AuthBackend interface {
	// GetCurrentSession returns the persisted session, or nil when there is
	// none or it has expired.
	GetCurrentSession(ctx context.Context) (*domain.Session, error)

	// OnSessionChange registers fn for the lifetime of the returned
	// Subscription.
	OnSessionChange(ctx context.Context, fn SessionChangeFunc) (Subscription, error)

	RegisterWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	AuthenticateWithPassword(ctx context.Context, email, password string) (*domain.Session, error)

	// EndSession invalidates the current session.
	EndSession(ctx context.Context) error
}
