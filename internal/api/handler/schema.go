package handler

import (
	"time"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// --- Requests ---

type credentialsRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Priority    string `json:"priority"`
}

// updateTaskRequest carries only the fields being changed.
type updateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority"`
}

type filterRequest struct {
	Filter string `json:"filter" validate:"required"`
}

// --- Responses ---

type errorResponse struct {
	Error string `json:"error"`
}

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	Loading       bool             `json:"loading"`
	User          *domain.Identity `json:"user,omitempty"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

type taskListResponse struct {
	Tasks     []taskResponse `json:"tasks"`
	Filter    string         `json:"filter"`
	Loading   bool           `json:"loading"`
	Error     string         `json:"error,omitempty"`
	EmptyHint string         `json:"empty_hint,omitempty"`
}
