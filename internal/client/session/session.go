// Package session holds the client's authentication state.
//
// A Session moves between three phases:
//
//	initializing -> anonymous | authenticated
//	anonymous     -> authenticated  (Login)
//	authenticated -> anonymous      (Logout, or the token store was wiped by a 401)
//
// The token store is the source of truth. The cached state is re-derived
// whenever the store no longer holds the token the session was built from.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/scmclient/internal/client/api"
	"github.com/dmitrijs2005/scmclient/internal/client/tokenstore"
	"github.com/dmitrijs2005/scmclient/internal/common"
	"github.com/dmitrijs2005/scmclient/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// ErrTornDown is returned by Init and Login after Teardown.
var ErrTornDown = errors.New("session torn down")

// ErrNoAccessToken is returned when a login response carries no token.
var ErrNoAccessToken = errors.New("login response has no access token")

type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseAnonymous
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// State is what views and guards observe. Authenticated is true exactly
// when User is set.
type State struct {
	User          *api.UserProfile
	Authenticated bool
	Loading       bool
}

// Authenticator is the subset of the auth gateway the session uses.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	Profile(ctx context.Context) (*api.UserProfile, error)
}

type Session struct {
	store tokenstore.Store
	auth  Authenticator
	log   logging.Logger
	now   func() time.Time

	mu         sync.Mutex
	phase      Phase
	user       *api.UserProfile
	token      string
	tornDown   bool
	cancelInit context.CancelFunc
}

type Option func(*Session)

// WithClock overrides the clock used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

func New(store tokenstore.Store, auth Authenticator, log logging.Logger, opts ...Option) *Session {
	if log == nil {
		log = logging.Discard()
	}
	s := &Session{
		store: store,
		auth:  auth,
		log:   log,
		now:   time.Now,
		phase: PhaseInitializing,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init restores the session from the token store. Without a stored token
// the session becomes anonymous. With one, the profile is fetched; any
// failure clears the store and leaves the session anonymous.
func (s *Session) Init(ctx context.Context) error {
	s.mu.Lock()
	if s.tornDown {
		s.mu.Unlock()
		return ErrTornDown
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancelInit = cancel
	s.mu.Unlock()
	defer cancel()

	token, err := s.store.Token(ctx)
	if err != nil {
		s.fail(ctx, "")
		return fmt.Errorf("failed to read token: %w", err)
	}
	if token == "" {
		s.setAnonymous()
		return nil
	}

	if s.expired(token) {
		s.fail(ctx, token)
		return common.ErrTokenExpired
	}

	s.mu.Lock()
	s.phase = PhaseInitializing
	s.token = token
	s.mu.Unlock()

	profile, err := s.auth.Profile(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// shutting down; keep the stored credential for the next start
			return ctx.Err()
		}
		s.fail(ctx, token)
		return fmt.Errorf("failed to restore session: %w", err)
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		s.fail(ctx, token)
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// a Login, Logout or Teardown finished while the profile was in flight
	if s.tornDown || s.token != token || s.phase != PhaseInitializing {
		return nil
	}
	if err := s.store.Save(ctx, token, raw); err != nil {
		s.phase, s.user, s.token = PhaseAnonymous, nil, ""
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.phase, s.user = PhaseAuthenticated, profile
	s.log.Info(ctx, "session restored", "user", profile.Username)
	return nil
}

// Login authenticates and persists the token and profile. On failure the
// state is left as it was and the gateway error is returned.
func (s *Session) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	torn := s.tornDown
	s.mu.Unlock()
	if torn {
		return ErrTornDown
	}

	resp, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return ErrNoAccessToken
	}

	profile := resp.User
	if profile == nil {
		// the gateway reads the token from the store
		if err := s.store.SetToken(ctx, resp.AccessToken); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		profile, err = s.auth.Profile(ctx)
		if err != nil {
			_ = s.store.Clear(ctx)
			return err
		}
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.store.Save(ctx, resp.AccessToken, raw); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.mu.Lock()
	s.phase, s.user, s.token = PhaseAuthenticated, profile, resp.AccessToken
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "user", profile.Username)
	return nil
}

// Logout clears the stored session. It is idempotent and allowed after
// Teardown.
func (s *Session) Logout(ctx context.Context) error {
	err := s.store.Clear(ctx)
	s.setAnonymous()
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Teardown ends the session: in-flight Init is cancelled and later Init or
// Login calls fail with ErrTornDown.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tornDown = true
	if s.cancelInit != nil {
		s.cancelInit()
	}
}

// Check re-derives the state from the token store and returns it.
func (s *Session) Check(ctx context.Context) State {
	s.mu.Lock()
	phase, token := s.phase, s.token
	s.mu.Unlock()

	if phase == PhaseAuthenticated {
		stored, err := s.store.Token(ctx)
		switch {
		case err != nil:
			s.log.Warn(ctx, "failed to read token", "err", err)
		case stored != token:
			s.log.Info(ctx, "session token gone, signing out")
			s.compareAndReset(token)
		}
	}
	return s.snapshot()
}

// State is Check with a background context.
func (s *Session) State() State {
	return s.Check(context.Background())
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	var user *api.UserProfile
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return State{
		User:          user,
		Authenticated: s.phase == PhaseAuthenticated,
		Loading:       s.phase == PhaseInitializing,
	}
}

func (s *Session) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase, s.user, s.token = PhaseAnonymous, nil, ""
}

func (s *Session) compareAndReset(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == token {
		s.phase, s.user, s.token = PhaseAnonymous, nil, ""
	}
}

// fail clears the store unless another token has been stored meanwhile, and
// makes the session anonymous.
func (s *Session) fail(ctx context.Context, token string) {
	ctx = context.WithoutCancel(ctx)
	if stored, err := s.store.Token(ctx); err == nil && stored != "" && stored != token {
		return
	}
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear session", "err", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == token || s.phase == PhaseInitializing {
		s.phase, s.user, s.token = PhaseAnonymous, nil, ""
	}
}

// expired reports a JWT whose exp claim has passed. Tokens that do not
// parse as JWTs are never considered expired here; the backend decides.
func (s *Session) expired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !s.now().Before(claims.ExpiresAt.Time)
}
