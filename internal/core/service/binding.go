package service

import (
	"context"

	"github.com/taskboard/taskboard/internal/core/ports"
)

// BindSession makes tasks follow the identity held by sessions. Whenever the
// identity changes the collection is switched to the new user and reloaded in
// the background; signing out switches it to the empty, unauthenticated
// state. The returned function stops following.
func BindSession(ctx context.Context, sessions *SessionService, tasks *TaskService) (unbind func()) {
	follow := func(state ports.SessionState, initial bool) {
		userID := ""
		if state.Identity != nil {
			userID = state.Identity.ID
		}
		switched := tasks.SwitchUser(userID)
		if (switched || initial) && userID != "" {
			go func() { _ = tasks.Load(ctx) }()
		}
	}

	unbind = sessions.Subscribe(func(state ports.SessionState) { follow(state, false) })
	follow(sessions.State(), true)
	return unbind
}
