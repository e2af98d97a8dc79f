package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

type stubSessions struct {
	state ports.SessionState
}

func (s *stubSessions) State() ports.SessionState                 { return s.state }
func (s *stubSessions) Subscribe(func(ports.SessionState)) func() { return func() {} }
func (s *stubSessions) SignOut(context.Context) error             { return nil }
func (s *stubSessions) SignUp(context.Context, string, string) (*domain.Session, error) {
	return nil, nil
}
func (s *stubSessions) SignIn(context.Context, string, string) (*domain.Session, error) {
	return nil, nil
}

func signedIn(expires time.Time) ports.SessionState {
	id := domain.Identity{ID: "user-1", Email: "ann@example.com"}
	return ports.SessionState{
		Identity: &id,
		Session:  &domain.Session{AccessToken: "tok", ExpiresAt: expires, Identity: id},
	}
}

func run(t *testing.T, state ports.SessionState, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireSession(&stubSessions{state: state})(next)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequireSession_Authenticated(t *testing.T) {
	called := false
	rec := run(t, signedIn(time.Now().Add(time.Hour)), func(c echo.Context) error {
		called = true
		if c.Get(ContextUserID) != "user-1" {
			t.Fatalf("user id not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSession_Anonymous(t *testing.T) {
	rec := run(t, ports.SessionState{}, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSession_Expired(t *testing.T) {
	rec := run(t, signedIn(time.Now().Add(-time.Minute)), func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSession_Loading(t *testing.T) {
	rec := run(t, ports.SessionState{Loading: true}, func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
