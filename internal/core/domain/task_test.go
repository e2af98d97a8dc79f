package domain

import (
	"errors"
	"testing"
	"time"
)

func sampleTasks() []Task {
	now := time.Now().UTC()
	return []Task{
		{ID: "t3", Title: "Ship release", Completed: false, CreatedAt: now},
		{ID: "t2", Title: "Write notes", Completed: true, CreatedAt: now.Add(-time.Minute)},
		{ID: "t1", Title: "Buy milk", Completed: false, CreatedAt: now.Add(-2 * time.Minute)},
	}
}

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterTasks(t *testing.T) {
	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"t3", "t2", "t1"}},
		{FilterActive, []string{"t3", "t1"}},
		{FilterCompleted, []string{"t2"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := ids(FilterTasks(sampleTasks(), tt.filter))
			if !equalIDs(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterTasks_IdempotentAndOrderPreserving(t *testing.T) {
	for _, f := range []Filter{FilterAll, FilterActive, FilterCompleted} {
		once := FilterTasks(sampleTasks(), f)
		twice := FilterTasks(once, f)
		if !equalIDs(ids(once), ids(twice)) {
			t.Fatalf("%s: filtering twice changed result: %v vs %v", f, ids(once), ids(twice))
		}
	}
}

func TestFilterTasks_EmptyInput(t *testing.T) {
	got := FilterTasks(nil, FilterCompleted)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(" active ")
	if err != nil || f != FilterActive {
		t.Fatalf("expected Active, got %q (%v)", f, err)
	}
	if _, err := ParseFilter("archived"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("")
	if err != nil || p != PriorityMedium {
		t.Fatalf("expected default Medium, got %q (%v)", p, err)
	}
	p, err = ParsePriority("HIGH")
	if err != nil || p != PriorityHigh {
		t.Fatalf("expected High, got %q (%v)", p, err)
	}
	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestTaskPatch_Apply(t *testing.T) {
	task := Task{ID: "t1", Title: "old", Description: "keep", Priority: PriorityLow}
	title := "new"
	done := true
	patch := TaskPatch{Title: &title, Completed: &done}

	patch.Apply(&task)

	if task.Title != "new" || !task.Completed {
		t.Fatalf("patch not applied: %+v", task)
	}
	if task.Description != "keep" || task.Priority != PriorityLow {
		t.Fatalf("unset fields changed: %+v", task)
	}
	if patch.Empty() {
		t.Fatal("expected non-empty patch")
	}
	if !(TaskPatch{}).Empty() {
		t.Fatal("expected zero patch to be empty")
	}
}

func TestFilter_EmptyHint(t *testing.T) {
	if got := FilterAll.EmptyHint(); got != "Create a new task to get started" {
		t.Fatalf("unexpected hint: %q", got)
	}
	if got := FilterCompleted.EmptyHint(); got != "No completed tasks available" {
		t.Fatalf("unexpected hint: %q", got)
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}
	if s.Expired(now) {
		t.Fatal("expected session to be valid")
	}
	if !s.Expired(now.Add(time.Hour)) {
		t.Fatal("expected session to be expired")
	}
	var none *Session
	if !none.Expired(now) {
		t.Fatal("expected nil session to count as expired")
	}
}
