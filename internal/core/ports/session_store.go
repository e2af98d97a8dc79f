package ports

import (
	"context"
	"time"

	"github.com/taskboard/taskboard/internal/core/domain"
)

// SessionMessage is the wire form of a session change on the notification
// channel. Token is empty for sign-out and expiry.
type SessionMessage struct {
	Event domain.AuthEvent `json:"event"`
	Token string           `json:"token,omitempty"`
}

// SessionStore keeps the current session token for this device and fans out
// session changes to every client sharing it.
type SessionStore interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	// Load returns domain.ErrNoSession when nothing is stored.
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error

	Publish(ctx context.Context, msg SessionMessage) error
	// Subscribe returns a channel of messages that is closed once the
	// returned close function has been called.
	Subscribe(ctx context.Context) (<-chan SessionMessage, func() error, error)
}
