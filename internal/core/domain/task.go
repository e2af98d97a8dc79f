package domain

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the user-assigned importance of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// DefaultPriority is what the task form preselects.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority accepts a priority name case-insensitively. An empty string
// yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPriority, nil
	}
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// Task is a single to-do item owned by one user.
type Task struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Completed   bool      `json:"completed" bson:"completed"`
	Priority    Priority  `json:"priority" bson:"priority"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UserID      string    `json:"user_id" bson:"user_id"`
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *Priority
}

// Empty reports whether the patch would change nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil && p.Priority == nil
}

// Apply merges the set fields of p into t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
}

// Filter narrows the visible task set. It is UI-session state and is never
// persisted.
type Filter string

const (
	FilterAll       Filter = "All"
	FilterActive    Filter = "Active"
	FilterCompleted Filter = "Completed"
)

// ParseFilter accepts a filter name case-insensitively.
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	for _, f := range []Filter{FilterAll, FilterActive, FilterCompleted} {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
}

// Matches reports whether t is visible under f.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// EmptyHint is the message shown when nothing matches f.
func (f Filter) EmptyHint() string {
	if f == FilterAll || f == "" {
		return "Create a new task to get started"
	}
	return fmt.Sprintf("No %s tasks available", strings.ToLower(string(f)))
}

// FilterTasks returns the tasks visible under f, keeping their order.
func FilterTasks(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
