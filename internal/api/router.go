package api

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard/internal/api/handler"
	"github.com/taskboard/taskboard/internal/api/middleware"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// Register installs the validator, the error handler and every application
// route on e.
func Register(e *echo.Echo, sessions ports.SessionService, tasks ports.TaskService, log zerolog.Logger) {
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	authHandler := handler.NewAuthHandler(sessions)
	taskHandler := handler.NewTaskHandler(tasks)
	streamHandler := handler.NewStreamHandler(sessions, tasks, log)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/sign-up", authHandler.SignUp)
	auth.POST("/sign-in", authHandler.SignIn)
	auth.POST("/sign-out", authHandler.SignOut)
	auth.GET("/session", authHandler.Session)

	// --- Task routes (session required) ---
	t := e.Group("/tasks", middleware.RequireSession(sessions))
	t.GET("", taskHandler.List)
	t.POST("", taskHandler.Create)
	t.POST("/reload", taskHandler.Reload)
	t.PUT("/filter", taskHandler.SetFilter)
	t.PATCH("/:id", taskHandler.Update)
	t.POST("/:id/toggle", taskHandler.Toggle)
	t.DELETE("/:id", taskHandler.Delete)

	// --- Live state ---
	e.GET("/events", streamHandler.Events)
}
