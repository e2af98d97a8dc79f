package ports

import (
	"context"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// TaskState is the snapshot the task collection exposes to presentation.
// Tasks is already narrowed by Filter and keeps newest-first order; Total
// counts the whole cache.
type TaskState struct {
	UserID  string
	Tasks   []domain.Task
	Total   int
	Loading bool
	Error   string
	Filter  domain.Filter
}

// TaskService is the task collection module as consumed by presentation.
type TaskService interface {
	State() TaskState
	Subscribe(fn func(TaskState)) (unsubscribe func())
	Load(ctx context.Context) error
	Create(ctx context.Context, title, description string, priority domain.Priority) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) error
	ToggleCompletion(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	SetFilter(f domain.Filter) error
}
