package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// Messages surfaced through TaskState.Error.
const (
	MsgLoadFailed   = "Failed to fetch tasks. Please try again later."
	MsgCreateFailed = "Failed to create task. Please try again."
	MsgUpdateFailed = "Failed to update task. Please try again."
	MsgDeleteFailed = "Failed to delete task. Please try again."
)

// TaskOption customises a TaskService.
type TaskOption func(*TaskService)

// WithClock overrides the timestamp source used for new tasks.
func WithClock(now func() time.Time) TaskOption {
	return func(s *TaskService) { s.now = now }
}

// WithIDGenerator overrides the id source used for new tasks.
func WithIDGenerator(newID func() string) TaskOption {
	return func(s *TaskService) { s.newID = newID }
}

// TaskService keeps a local, newest-first cache of one user's tasks.
//
// The remote store is the source of truth. Every cache mutation waits for the
// backend to confirm, and a result is applied to whatever cache exists when
// it arrives. Results belonging to a previous user (see SwitchUser) or
// arriving after Close are dropped.
type TaskService struct {
	repo  ports.TaskRepository
	log   zerolog.Logger
	now   func() time.Time
	newID func() string

	mu         sync.Mutex
	userID     string
	cache      []domain.Task
	loading    bool
	pending    int
	errMsg     string
	filter     domain.Filter
	generation uint64
	closed     bool

	listeners notifier[ports.TaskState]
}

// NewTaskService builds the collection for userID. An empty userID means
// unauthenticated: the collection stays empty and never calls the backend.
// The first Load is up to the caller.
func NewTaskService(repo ports.TaskRepository, userID string, log zerolog.Logger, opts ...TaskOption) *TaskService {
	s := &TaskService{
		repo:   repo,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
		userID: userID,
		filter: domain.FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SwitchUser points the collection at another user. The cache and error are
// reset and in-flight results for the previous user are invalidated. A
// non-empty user starts out loading. It reports whether anything changed;
// the caller is expected to Load next.
func (s *TaskService) SwitchUser(userID string) bool {
	s.mu.Lock()
	if s.closed || s.userID == userID {
		s.mu.Unlock()
		return false
	}
	s.userID = userID
	s.cache = nil
	s.errMsg = ""
	s.pending = 0
	s.loading = userID != ""
	s.generation++
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug().Str("user_id", userID).Msg("task collection switched user")
	s.listeners.notify(snapshot)
	return true
}

// Load fetches all of the user's tasks and replaces the cache. On failure the
// previous cache is kept and the error message is set. There is no retry.
// Loading stays set until every overlapping Load has finished.
func (s *TaskService) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || s.userID == "" {
		s.mu.Unlock()
		return nil
	}
	userID, gen := s.userID, s.generation
	s.pending++
	s.loading = true
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.listeners.notify(snapshot)

	tasks, err := s.repo.ListByUser(ctx, userID)

	s.mu.Lock()
	if !s.currentLocked(gen) {
		s.mu.Unlock()
		return nil
	}
	s.pending--
	s.loading = s.pending > 0
	if err != nil {
		s.errMsg = MsgLoadFailed
	} else {
		s.cache = append([]domain.Task(nil), tasks...)
		s.errMsg = ""
	}
	snapshot = s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("error fetching tasks")
		s.listeners.notify(snapshot)
		return fmt.Errorf("load tasks: %w", err)
	}
	s.log.Debug().Str("user_id", userID).Int("count", len(tasks)).Msg("tasks loaded")
	s.listeners.notify(snapshot)
	return nil
}

// Create persists a new task and, once the backend confirms, prepends it to
// the cache. On failure it returns a nil task and the cache is unchanged.
func (s *TaskService) Create(ctx context.Context, title, description string, priority domain.Priority) (*domain.Task, error) {
	s.mu.Lock()
	if s.closed || s.userID == "" {
		s.mu.Unlock()
		return nil, domain.ErrNotAuthenticated
	}
	userID, gen := s.userID, s.generation
	s.mu.Unlock()

	task := domain.Task{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		Completed:   false,
		Priority:    priority,
		CreatedAt:   s.now().UTC(),
		UserID:      userID,
	}

	err := s.repo.Insert(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("error creating task")
		s.fail(gen, MsgCreateFailed)
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.mutate(gen, func() {
		s.cache = append([]domain.Task{task}, s.cache...)
	})
	s.log.Info().Str("task_id", task.ID).Str("priority", string(task.Priority)).Msg("task created")
	return &task, nil
}

// Update persists patch for the task id owned by the current user and merges
// it into the cached entry in place. Ids that are not cached are ignored.
func (s *TaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) error {
	s.mu.Lock()
	if s.closed || s.userID == "" {
		s.mu.Unlock()
		return nil
	}
	if s.indexLocked(id) < 0 || patch.Empty() {
		s.mu.Unlock()
		return nil
	}
	userID, gen := s.userID, s.generation
	s.mu.Unlock()

	if err := s.repo.Update(ctx, id, userID, patch); err != nil {
		s.log.Error().Err(err).Str("task_id", id).Msg("error updating task")
		s.fail(gen, MsgUpdateFailed)
		return fmt.Errorf("update task: %w", err)
	}

	s.mutate(gen, func() {
		if i := s.indexLocked(id); i >= 0 {
			patch.Apply(&s.cache[i])
		}
	})
	return nil
}

// ToggleCompletion flips the completed flag of a cached task.
func (s *TaskService) ToggleCompletion(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	completed := !s.cache[i].Completed
	s.mu.Unlock()

	return s.Update(ctx, id, domain.TaskPatch{Completed: &completed})
}

// Delete removes the task id owned by the current user and drops it from the
// cache once confirmed. Ids that are not cached are ignored.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.closed || s.userID == "" || s.indexLocked(id) < 0 {
		s.mu.Unlock()
		return nil
	}
	userID, gen := s.userID, s.generation
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		s.log.Error().Err(err).Str("task_id", id).Msg("error deleting task")
		s.fail(gen, MsgDeleteFailed)
		return fmt.Errorf("delete task: %w", err)
	}

	s.mutate(gen, func() {
		if i := s.indexLocked(id); i >= 0 {
			s.cache = append(s.cache[:i:i], s.cache[i+1:]...)
		}
	})
	return nil
}

// SetFilter changes the visible subset. It never touches the backend.
func (s *TaskService) SetFilter(f domain.Filter) error {
	f, err := domain.ParseFilter(string(f))
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.filter = f
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.listeners.notify(snapshot)
	return nil
}

// State returns the current filtered view.
func (s *TaskService) State() ports.TaskState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called after every state change.
func (s *TaskService) Subscribe(fn func(ports.TaskState)) func() {
	return s.listeners.subscribe(fn)
}

// Close detaches the collection. Operations still in flight complete against
// the backend but no longer touch local state.
func (s *TaskService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.listeners.clear()
}

// mutate applies fn to the cache if gen is still current, clears the shared
// error and notifies listeners.
func (s *TaskService) mutate(gen uint64, fn func()) {
	s.mu.Lock()
	if !s.currentLocked(gen) {
		s.mu.Unlock()
		return
	}
	fn()
	s.errMsg = ""
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.listeners.notify(snapshot)
}

func (s *TaskService) fail(gen uint64, msg string) {
	s.mu.Lock()
	if !s.currentLocked(gen) {
		s.mu.Unlock()
		return
	}
	s.errMsg = msg
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.listeners.notify(snapshot)
}

func (s *TaskService) currentLocked(gen uint64) bool {
	return !s.closed && s.generation == gen
}

func (s *TaskService) indexLocked(id string) int {
	for i := range s.cache {
		if s.cache[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskService) snapshotLocked() ports.TaskState {
	return ports.TaskState{
		UserID:  s.userID,
		Tasks:   domain.FilterTasks(s.cache, s.filter),
		Total:   len(s.cache),
		Loading: s.loading,
		Error:   s.errMsg,
		Filter:  s.filter,
	}
}
