package ports

import (
	"context"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// SessionState is the snapshot the session module exposes to presentation.
type SessionState struct {
	Identity *domain.Identity
	Session  *domain.Session
	Loading  bool
}

// Authenticated reports whether an identity is present.
func (s SessionState) Authenticated() bool {
	return s.Identity != nil
}

// SessionService is the session module as consumed by presentation.
type SessionService interface {
	State() SessionState
	Subscribe(fn func(SessionState)) (unsubscribe func())
	SignUp(ctx context.Context, email, password string) (*domain.Session, error)
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context) error
}
