package handler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

type stubSessionService struct {
	state     ports.SessionState
	signUpFn  func(ctx context.Context, email, password string) (*domain.Session, error)
	signInFn  func(ctx context.Context, email, password string) (*domain.Session, error)
	signOutFn func(ctx context.Context) error

	mu        sync.Mutex
	listeners []func(ports.SessionState)
}

func (s *stubSessionService) State() ports.SessionState { return s.state }

func (s *stubSessionService) Subscribe(fn func(ports.SessionState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
	return func() {}
}

func (s *stubSessionService) subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *stubSessionService) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.signUpFn(ctx, email, password)
}

func (s *stubSessionService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubSessionService) SignOut(ctx context.Context) error {
	return s.signOutFn(ctx)
}

type stubTaskService struct {
	state   ports.TaskState
	err     error
	created struct {
		title, description string
		priority           domain.Priority
	}
	patched struct {
		id    string
		patch domain.TaskPatch
	}
	toggled string
	deleted string
	filter  domain.Filter
	loads   int

	mu        sync.Mutex
	listeners []func(ports.TaskState)
}

func (s *stubTaskService) State() ports.TaskState { return s.state }

func (s *stubTaskService) Subscribe(fn func(ports.TaskState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
	return func() {}
}

func (s *stubTaskService) emit(state ports.TaskState) {
	s.mu.Lock()
	fns := append(([]func(ports.TaskState))(nil), s.listeners...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(state)
	}
}

func (s *stubTaskService) subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *stubTaskService) Load(context.Context) error {
	s.loads++
	return s.err
}

func (s *stubTaskService) Create(_ context.Context, title, description string, priority domain.Priority) (*domain.Task, error) {
	s.created.title, s.created.description, s.created.priority = title, description, priority
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Task{ID: "t1", Title: title, Description: description, Priority: priority}, nil
}

func (s *stubTaskService) Update(_ context.Context, id string, patch domain.TaskPatch) error {
	s.patched.id, s.patched.patch = id, patch
	return s.err
}

func (s *stubTaskService) ToggleCompletion(_ context.Context, id string) error {
	s.toggled = id
	return s.err
}

func (s *stubTaskService) Delete(_ context.Context, id string) error {
	s.deleted = id
	return s.err
}

func (s *stubTaskService) SetFilter(f domain.Filter) error {
	s.filter = f
	s.state.Filter = f
	return nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// httpStatus returns the status carried by err, failing if err is not an
// *echo.HTTPError.
func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}
