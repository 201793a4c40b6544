// Package auth owns the console's single authenticated session: the
// bearer token, the resolved identity, and the admin route guard built
// on top of them.
package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pulsegrid/console/internal/api"
	"github.com/pulsegrid/console/internal/shared"
)

// Phase is the lifecycle position of the session service.
type Phase int

const (
	// PhaseUninitialized means Init has not run yet.
	PhaseUninitialized Phase = iota
	// PhaseResolving means an identity resolution is in flight.
	PhaseResolving
	// PhaseReady means the session settled, with or without a user.
	PhaseReady
)

// State is an immutable snapshot of the session.
type State struct {
	Phase Phase
	User  *api.AuthUser
}

// Admin reports whether the snapshot carries an admin identity.
func (s State) Admin() bool {
	return s.User != nil && s.User.IsAdmin
}

// API is the slice of the admin API the session service needs.
type API interface {
	Login(ctx context.Context, creds api.Credentials) (api.LoginResult, error)
	Me(ctx context.Context) (api.AuthUser, error)
}

// Session is the process-wide authenticated session. Exactly one
// instance exists per console process and is shared by reference with
// every consumer.
type Session struct {
	logger *slog.Logger
	client API
	tokens *shared.TokenStore
	runID  string

	mu    sync.RWMutex
	state State
	subs  []chan State
}

// NewSession constructs the session service in the uninitialized phase.
func NewSession(logger *slog.Logger, client API, tokens *shared.TokenStore) *Session {
	return &Session{
		logger: logger,
		client: client,
		tokens: tokens,
		runID:  uuid.NewString(),
		state:  State{Phase: PhaseUninitialized},
	}
}

// RunID identifies this console run. CSRF tokens are bound to it.
func (s *Session) RunID() string {
	return s.runID
}

// Current returns the latest session snapshot.
func (s *Session) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe returns a channel receiving future state snapshots. Slow
// consumers miss intermediate states rather than blocking transitions.
func (s *Session) Subscribe() <-chan State {
	ch := make(chan State, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Init resolves the persisted token into an identity, exactly once at
// startup. A failed resolution is swallowed: an expired or invalid token
// demotes the session to signed out instead of surfacing an error.
func (s *Session) Init(ctx context.Context) {
	token, ok := s.tokens.Get(ctx)
	if !ok || token == "" {
		s.transition(State{Phase: PhaseReady})
		return
	}
	s.transition(State{Phase: PhaseResolving})
	user, err := s.client.Me(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("identity resolution failed, treating as signed out", slog.Any("error", err))
		}
		s.transition(State{Phase: PhaseReady})
		return
	}
	s.transition(State{Phase: PhaseReady, User: &user})
}

// Login exchanges credentials for a token, persists it and settles the
// session on the returned identity. Errors propagate to the caller.
func (s *Session) Login(ctx context.Context, creds api.Credentials) (api.AuthUser, error) {
	prev := s.Current()
	s.transition(State{Phase: PhaseResolving, User: prev.User})
	result, err := s.client.Login(ctx, creds)
	if err != nil {
		s.transition(State{Phase: PhaseReady, User: prev.User})
		return api.AuthUser{}, err
	}
	s.tokens.Set(ctx, result.Token)
	user := result.User
	s.transition(State{Phase: PhaseReady, User: &user})
	return user, nil
}

// Logout clears the token and identity synchronously. The server is not
// called; the token simply stops being presented.
func (s *Session) Logout(ctx context.Context) {
	s.tokens.Clear(ctx)
	s.transition(State{Phase: PhaseReady})
}

func (s *Session) transition(next State) {
	s.mu.Lock()
	s.state = next
	subs := make([]chan State, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- next:
		default:
			// Drop the stale snapshot so the latest one lands.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next:
			default:
			}
		}
	}
}
