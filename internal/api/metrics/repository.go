package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// TaskRepository records call counts and latencies around another
// ports.TaskRepository.
type TaskRepository struct {
	next ports.TaskRepository
}

func InstrumentTaskRepository(next ports.TaskRepository) *TaskRepository {
	return &TaskRepository{next: next}
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	defer observe("list", time.Now())
	tasks, err := r.next.ListByUser(ctx, userID)
	record("list", err)
	return tasks, err
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) error {
	defer observe("insert", time.Now())
	err := r.next.Insert(ctx, task)
	record("insert", err)
	return err
}

func (r *TaskRepository) Update(ctx context.Context, id, userID string, patch domain.TaskPatch) error {
	defer observe("update", time.Now())
	err := r.next.Update(ctx, id, userID, patch)
	record("update", err)
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID string) error {
	defer observe("delete", time.Now())
	err := r.next.Delete(ctx, id, userID)
	record("delete", err)
	return err
}

func observe(op string, start time.Time) {
	BackendCallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func record(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	BackendCallsTotal.WithLabelValues(op, result).Inc()
}

// TrackState keeps the session and cache metrics in step with the two state
// modules. The returned function detaches both listeners.
func TrackState(sessions ports.SessionService, tasks ports.TaskService) func() {
	var (
		mu       sync.Mutex
		lastUser string
	)
	unsubSessions := sessions.Subscribe(func(s ports.SessionState) {
		user := ""
		if s.Identity != nil {
			user = s.Identity.ID
		}

		mu.Lock()
		defer mu.Unlock()
		switch {
		case user == lastUser:
		case user == "":
			SessionTransitionsTotal.WithLabelValues("anonymous").Inc()
		default:
			SessionTransitionsTotal.WithLabelValues("authenticated").Inc()
		}
		lastUser = user
	})
	unsubTasks := tasks.Subscribe(func(s ports.TaskState) {
		TasksCached.Set(float64(s.Total))
	})
	return func() {
		unsubSessions()
		unsubTasks()
	}
}
