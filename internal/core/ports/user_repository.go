package ports

import (
	"context"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// UserRepository persists accounts for the password auth backend.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
