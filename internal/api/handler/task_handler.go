package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// TaskHandler exposes the signed-in user's task collection.
type TaskHandler struct {
	tasks ports.TaskService
}

func NewTaskHandler(tasks ports.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List handles GET /tasks.
//
// @Summary      List tasks
// @Description  Returns the cached tasks narrowed by the active filter, newest first.
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  taskListResponse
// @Failure      401  {object}  errorResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, toTaskListResponse(h.tasks.State()))
}

// Reload handles POST /tasks/reload.
//
// @Summary      Reload tasks from the backend
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  taskListResponse
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /tasks/reload [post]
func (h *TaskHandler) Reload(c echo.Context) error {
	if err := h.tasks.Load(c.Request().Context()); err != nil {
		return h.backendFailure(err)
	}
	return c.JSON(http.StatusOK, toTaskListResponse(h.tasks.State()))
}

// Create handles POST /tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "New task; priority defaults to Medium"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		return err
	}

	task, err := h.tasks.Create(c.Request().Context(), req.Title, req.Description, priority)
	if err != nil {
		return h.backendFailure(err)
	}
	return c.JSON(http.StatusCreated, toTaskResponse(*task))
}

// Update handles PATCH /tasks/:id.
//
// @Summary      Edit a task
// @Tags         tasks
// @Accept       json
// @Param        id    path  string             true  "Task id"
// @Param        body  body  updateTaskRequest  true  "Fields to change"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	patch, err := toPatch(req)
	if err != nil {
		return err
	}
	if patch.Title != nil && *patch.Title == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "title is required")
	}

	if err := h.tasks.Update(c.Request().Context(), c.Param("id"), patch); err != nil {
		return h.backendFailure(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Toggle handles POST /tasks/:id/toggle.
//
// @Summary      Toggle completion
// @Tags         tasks
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /tasks/{id}/toggle [post]
func (h *TaskHandler) Toggle(c echo.Context) error {
	if err := h.tasks.ToggleCompletion(c.Request().Context(), c.Param("id")); err != nil {
		return h.backendFailure(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.tasks.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.backendFailure(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetFilter handles PUT /tasks/filter.
//
// @Summary      Change the visible subset
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      filterRequest  true  "all, active or completed"
// @Success      200   {object}  taskListResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /tasks/filter [put]
func (h *TaskHandler) SetFilter(c echo.Context) error {
	var req filterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	f, err := domain.ParseFilter(req.Filter)
	if err != nil {
		return err
	}
	if err := h.tasks.SetFilter(f); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskListResponse(h.tasks.State()))
}

// backendFailure surfaces the collection's user-facing message for a failed
// backend call.
func (h *TaskHandler) backendFailure(err error) error {
	if errors.Is(err, domain.ErrNotAuthenticated) {
		return err
	}
	msg := h.tasks.State().Error
	if msg == "" {
		msg = "task backend unavailable"
	}
	return echo.NewHTTPError(http.StatusBadGateway, msg).SetInternal(err)
}
