package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/core/ports"
)

// ContextUserID is the echo context key holding the signed-in user's id.
const ContextUserID = "user_id"

// RequireSession rejects requests while no unexpired session is held and
// injects the user id into the context otherwise.
func RequireSession(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := sessions.State()
			if state.Loading {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session is still loading")
			}
			if !state.Authenticated() || state.Session.Expired(time.Now()) {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			c.Set(ContextUserID, state.Identity.ID)
			return next(c)
		}
	}
}
