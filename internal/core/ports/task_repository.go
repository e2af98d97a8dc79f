package ports

import (
	"context"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// TaskRepository is the remote task store. Every mutating call is scoped by
// both task id and owning user id so one user can never touch another's rows.
type TaskRepository interface {
	// ListByUser returns all tasks owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Task, error)
	Insert(ctx context.Context, task domain.Task) error
	Update(ctx context.Context, id, userID string, patch domain.TaskPatch) error
	Delete(ctx context.Context, id, userID string) error
}
