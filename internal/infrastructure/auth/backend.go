// Package auth implements the hosted authentication backend on top of the
// user collection and the per-device session store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// PasswordBackend is an email/password ports.AuthBackend.
type PasswordBackend struct {
	users  ports.UserRepository
	store  ports.SessionStore
	tokens *TokenIssuer
	ttl    time.Duration
	cost   int
	now    func() time.Time
	log    zerolog.Logger
}

func NewPasswordBackend(users ports.UserRepository, store ports.SessionStore, tokens *TokenIssuer, ttl time.Duration, log zerolog.Logger) *PasswordBackend {
	return &PasswordBackend{
		users:  users,
		store:  store,
		tokens: tokens,
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
		log:    log,
	}
}

// GetCurrentSession restores the stored session. A missing or unreadable
// token means no session. A stale token is removed and TOKEN_EXPIRED is
// broadcast to the other clients of the device.
func (b *PasswordBackend) GetCurrentSession(ctx context.Context) (*domain.Session, error) {
	raw, err := b.store.Load(ctx)
	if errors.Is(err, domain.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session, err := b.tokens.Parse(raw)
	if err != nil {
		b.log.Info().Err(err).Msg("discarding stored session")
		if clearErr := b.store.Clear(ctx); clearErr != nil {
			b.log.Warn().Err(clearErr).Msg("failed to clear stale session")
		}
		if pubErr := b.store.Publish(ctx, ports.SessionMessage{Event: domain.AuthEventTokenExpired}); pubErr != nil {
			b.log.Warn().Err(pubErr).Msg("failed to broadcast token expiry")
		}
		return nil, nil
	}
	return session, nil
}

// OnSessionChange forwards session-store messages to fn until the returned
// subscription is released.
func (b *PasswordBackend) OnSessionChange(ctx context.Context, fn ports.SessionChangeFunc) (ports.Subscription, error) {
	msgs, closeFn, err := b.store.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	sub := &subscription{closeFn: closeFn, log: b.log}
	go func() {
		for msg := range msgs {
			if sub.stopped.Load() {
				continue
			}
			change, ok := b.changeFor(msg)
			if !ok {
				continue
			}
			fn(change)
		}
	}()
	return sub, nil
}

func (b *PasswordBackend) RegisterWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := b.now().UTC()
	user, err := b.users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	b.log.Info().Str("user_id", user.ID).Msg("user registered")
	return b.startSession(ctx, user.Identity())
}

// AuthenticateWithPassword never tells an unknown email apart from a wrong
// password.
func (b *PasswordBackend) AuthenticateWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := b.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return b.startSession(ctx, user.Identity())
}

func (b *PasswordBackend) EndSession(ctx context.Context) error {
	if err := b.store.Clear(ctx); err != nil {
		return err
	}
	return b.store.Publish(ctx, ports.SessionMessage{Event: domain.AuthEventSignedOut})
}

func (b *PasswordBackend) startSession(ctx context.Context, id domain.Identity) (*domain.Session, error) {
	session, err := b.tokens.Issue(id, b.ttl)
	if err != nil {
		return nil, err
	}
	if err := b.store.Save(ctx, session.AccessToken, b.ttl); err != nil {
		return nil, err
	}
	msg := ports.SessionMessage{Event: domain.AuthEventSignedIn, Token: session.AccessToken}
	if err := b.store.Publish(ctx, msg); err != nil {
		return nil, err
	}
	return session, nil
}

func (b *PasswordBackend) changeFor(msg ports.SessionMessage) (domain.SessionChange, bool) {
	switch msg.Event {
	case domain.AuthEventSignedIn:
		session, err := b.tokens.Parse(msg.Token)
		if err != nil {
			b.log.Warn().Err(err).Msg("ignoring sign-in with invalid token")
			return domain.SessionChange{}, false
		}
		return domain.SessionChange{Event: msg.Event, Session: session}, true
	case domain.AuthEventSignedOut, domain.AuthEventTokenExpired:
		return domain.SessionChange{Event: msg.Event}, true
	default:
		return domain.SessionChange{}, false
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type subscription struct {
	once    sync.Once
	stopped atomic.Bool
	closeFn func() error
	log     zerolog.Logger
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.stopped.Store(true)
		if err := s.closeFn(); err != nil {
			s.log.Warn().Err(err).Msg("failed to close session subscription")
		}
	})
}
