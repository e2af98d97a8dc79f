package handler

import (
	"strings"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// --- Request → domain ---

func toPatch(req updateTaskRequest) (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		patch.Title = &title
	}
	if req.Priority != nil {
		p, err := domain.ParsePriority(*req.Priority)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.Priority = &p
	}
	return patch, nil
}

// --- State → response ---

func toSessionResponse(s ports.SessionState) sessionResponse {
	resp := sessionResponse{
		Authenticated: s.Authenticated(),
		Loading:       s.Loading,
		User:          s.Identity,
	}
	if s.Session != nil {
		expires := s.Session.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return resp
}

func toTaskResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
	}
}

func toTaskListResponse(s ports.TaskState) taskListResponse {
	resp := taskListResponse{
		Tasks:   make([]taskResponse, 0, len(s.Tasks)),
		Filter:  string(s.Filter),
		Loading: s.Loading,
		Error:   s.Error,
	}
	for _, t := range s.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(t))
	}
	if len(s.Tasks) == 0 && !s.Loading {
		resp.EmptyHint = s.Filter.EmptyHint()
	}
	return resp
}
