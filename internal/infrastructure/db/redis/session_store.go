package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// SessionStore keeps one device's session token and broadcasts session
// changes for it.
//
// Key format:     session:<device_id>
// Channel format: session-events:<device_id>
type SessionStore struct {
	client   *redis.Client
	deviceID string
	log      zerolog.Logger
}

func NewSessionStore(client *redis.Client, deviceID string, log zerolog.Logger) *SessionStore {
	return &SessionStore{client: client, deviceID: deviceID, log: log}
}

func (s *SessionStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(), token, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key()).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	return token, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) Publish(ctx context.Context, msg ports.SessionMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode session message: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel(), payload).Err(); err != nil {
		return fmt.Errorf("publish session message: %w", err)
	}
	return nil
}

// Subscribe waits for the subscription to be confirmed before returning, so
// no message published after it returns can be missed.
func (s *SessionStore) Subscribe(ctx context.Context) (<-chan ports.SessionMessage, func() error, error) {
	ps := s.client.Subscribe(ctx, s.channel())
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, fmt.Errorf("subscribe session events: %w", err)
	}

	out := make(chan ports.SessionMessage)
	go func() {
		defer close(out)
		for m := range ps.Channel() {
			msg, err := decodeMessage(m.Payload)
			if err != nil {
				s.log.Warn().Err(err).Str("channel", m.Channel).Msg("dropping malformed session message")
				continue
			}
			out <- msg
		}
	}()

	return out, ps.Close, nil
}

func (s *SessionStore) key() string {
	return "session:" + s.deviceID
}

func (s *SessionStore) channel() string {
	return "session-events:" + s.deviceID
}

func decodeMessage(payload string) (ports.SessionMessage, error) {
	var msg ports.SessionMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return ports.SessionMessage{}, fmt.Errorf("decode session message: %w", err)
	}
	switch msg.Event {
	case domain.AuthEventSignedIn, domain.AuthEventSignedOut, domain.AuthEventTokenExpired:
		return msg, nil
	default:
		return ports.SessionMessage{}, fmt.Errorf("unknown session event %q", msg.Event)
	}
}
