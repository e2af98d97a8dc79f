package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

const (
	defaultSettleTimeout = 5 * time.Second
	recentSignInsKept    = 8
)

// SessionOption customises a SessionService.
type SessionOption func(*SessionService)

// WithSessionClock overrides the time source used for expiry checks.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionService) { s.now = now }
}

// WithSettleTimeout bounds how long SignUp and SignIn wait for the backend's
// SIGNED_IN notification before applying the confirmed session directly.
func WithSettleTimeout(d time.Duration) SessionOption {
	return func(s *SessionService) { s.settleTimeout = d }
}

// SessionService mirrors the backend's auth state for the presentation layer.
//
// State starts as loading and only moves to authenticated or anonymous on a
// backend response or notification. SignOut clears local state itself once
// the backend confirms, and a session is dropped locally when it reaches its
// expiry time.
type SessionService struct {
	backend       ports.AuthBackend
	log           zerolog.Logger
	now           func() time.Time
	settleTimeout time.Duration

	mu         sync.Mutex
	state      ports.SessionState
	sub        ports.Subscription
	started    bool
	closed     bool
	changeSeen bool
	expiry     *time.Timer

	// recent holds the access tokens of the last SIGNED_IN notifications;
	// waiters are sign-in calls blocked on one of them.
	recent  []string
	waiters map[string]chan struct{}

	closeOnce sync.Once
	listeners notifier[ports.SessionState]
}

// NewSessionService returns a session module in the loading state. Call Start
// to attach it to the backend.
func NewSessionService(backend ports.AuthBackend, log zerolog.Logger, opts ...SessionOption) *SessionService {
	s := &SessionService{
		backend:       backend,
		log:           log,
		now:           time.Now,
		settleTimeout: defaultSettleTimeout,
		state:         ports.SessionState{Loading: true},
		waiters:       make(map[string]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start subscribes to session changes and restores any persisted session.
// A notification that arrives while the initial lookup is in flight takes
// precedence over the lookup's result.
func (s *SessionService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return domain.ErrAlreadyStarted
	}
	s.started = true
	s.mu.Unlock()

	sub, err := s.backend.OnSessionChange(ctx, s.handleChange)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to subscribe to session changes")
		s.apply(nil, false)
		return fmt.Errorf("subscribe session changes: %w", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.Unsubscribe()
		return nil
	}
	s.sub = sub
	s.mu.Unlock()

	session, err := s.backend.GetCurrentSession(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to restore session")
		session = nil
	}
	s.apply(session, true)
	return nil
}

// handleChange is the backend callback. It is a no-op after Close.
func (s *SessionService) handleChange(change domain.SessionChange) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.changeSeen = true
	s.setLocked(change.Session)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug().Str("event", string(change.Event)).Bool("authenticated", snapshot.Authenticated()).Msg("session changed")
	s.listeners.notify(snapshot)

	// Sign-in calls are released only after listeners have seen the change.
	if change.Event == domain.AuthEventSignedIn && change.Session != nil {
		s.mu.Lock()
		waiter := s.signedInLocked(change.Session.AccessToken)
		s.mu.Unlock()
		if waiter != nil {
			close(waiter)
		}
	}
}

// apply sets state from a direct backend response. When initial is true the
// result is dropped if a notification has already been applied.
func (s *SessionService) apply(session *domain.Session, initial bool) {
	s.mu.Lock()
	if s.closed || (initial && s.changeSeen) {
		s.mu.Unlock()
		return
	}
	s.setLocked(session)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.listeners.notify(snapshot)
}

// setLocked replaces the state with session, treating an expired session as
// none, and re-arms the expiry timer.
func (s *SessionService) setLocked(session *domain.Session) {
	if s.expiry != nil {
		s.expiry.Stop()
		s.expiry = nil
	}
	if session != nil && session.Expired(s.now()) {
		session = nil
	}
	s.state = stateFor(session)
	if session == nil {
		return
	}
	token := session.AccessToken
	s.expiry = time.AfterFunc(session.ExpiresAt.Sub(s.now()), func() { s.expire(token) })
}

// expire drops the session identified by token if it is still current.
func (s *SessionService) expire(token string) {
	s.mu.Lock()
	if s.closed || s.state.Session == nil || s.state.Session.AccessToken != token {
		s.mu.Unlock()
		return
	}
	s.expiry = nil
	s.state = ports.SessionState{}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Info().Msg("session expired")
	s.listeners.notify(snapshot)
}

// signedInLocked returns the waiter for token, or remembers the token for a
// sign-in call that has not started waiting yet.
func (s *SessionService) signedInLocked(token string) chan struct{} {
	if ch, ok := s.waiters[token]; ok {
		delete(s.waiters, token)
		return ch
	}
	s.recent = append(s.recent, token)
	if len(s.recent) > recentSignInsKept {
		s.recent = s.recent[len(s.recent)-recentSignInsKept:]
	}
	return nil
}

// settle blocks until the SIGNED_IN notification for session has been
// applied. Without a live subscription, or once ctx or the settle timeout
// runs out, the confirmed session is applied directly.
func (s *SessionService) settle(ctx context.Context, session *domain.Session) {
	token := session.AccessToken

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if i := slices.Index(s.recent, token); i >= 0 {
		s.recent = slices.Delete(s.recent, i, i+1)
		s.mu.Unlock()
		return
	}
	if s.sub == nil {
		s.mu.Unlock()
		s.apply(session, false)
		return
	}
	ch, ok := s.waiters[token]
	if !ok {
		ch = make(chan struct{})
		s.waiters[token] = ch
	}
	s.mu.Unlock()

	timer := time.NewTimer(s.settleTimeout)
	defer timer.Stop()
	select {
	case <-ch:
		return
	case <-ctx.Done():
	case <-timer.C:
	}

	s.mu.Lock()
	delete(s.waiters, token)
	s.mu.Unlock()
	s.log.Warn().Msg("sign-in notification not received, applying confirmed session")
	s.apply(session, false)
}

// SignUp registers a new account. The exposed state follows from the
// backend's session-change notification; SignUp returns once that
// notification has been applied.
func (s *SessionService) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	session, err := s.backend.RegisterWithPassword(ctx, email, password)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("error signing up")
		return nil, err
	}
	s.settle(ctx, session)
	return session, nil
}

// SignIn authenticates existing credentials. Same contract as SignUp.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	session, err := s.backend.AuthenticateWithPassword(ctx, email, password)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("error signing in")
		return nil, err
	}
	s.settle(ctx, session)
	return session, nil
}

// SignOut ends the session with the backend and, only once that succeeds,
// clears the local identity.
func (s *SessionService) SignOut(ctx context.Context) error {
	if err := s.backend.EndSession(ctx); err != nil {
		s.log.Error().Err(err).Msg("error signing out")
		return err
	}
	s.apply(nil, false)
	return nil
}

// State returns a copy of the current state.
func (s *SessionService) State() ports.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Identity is a shorthand for State().Identity.
func (s *SessionService) Identity() *domain.Identity {
	return s.State().Identity
}

// Subscribe registers fn to be called after every state change.
func (s *SessionService) Subscribe(fn func(ports.SessionState)) func() {
	return s.listeners.subscribe(fn)
}

// Close releases the backend subscription and stops the expiry timer. It is
// safe to call repeatedly and before Start; the subscription is released
// exactly once.
func (s *SessionService) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		sub := s.sub
		s.sub = nil
		if s.expiry != nil {
			s.expiry.Stop()
			s.expiry = nil
		}
		for token, ch := range s.waiters {
			close(ch)
			delete(s.waiters, token)
		}
		s.mu.Unlock()

		if sub != nil {
			sub.Unsubscribe()
		}
		s.listeners.clear()
	})
}

func (s *SessionService) snapshotLocked() ports.SessionState {
	out := ports.SessionState{Loading: s.state.Loading}
	if s.state.Identity != nil {
		id := *s.state.Identity
		out.Identity = &id
	}
	if s.state.Session != nil {
		sess := *s.state.Session
		out.Session = &sess
	}
	return out
}

func stateFor(session *domain.Session) ports.SessionState {
	if session == nil {
		return ports.SessionState{}
	}
	id := session.Identity
	sess := *session
	return ports.SessionState{Identity: &id, Session: &sess}
}
