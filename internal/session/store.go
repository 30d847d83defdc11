package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Persisted state keys owned by this package. No other component may
// write them.
const (
	keyToken = "auth.token"
	keyUser  = "auth.user"
)

// API is the slice of the boundary client the session store needs.
type API interface {
	// PasswordLogin exchanges credentials for a bearer token using the
	// form-encoded password-grant flow.
	PasswordLogin(ctx context.Context, email, password string) (string, error)

	// Me fetches the authoritative profile for the current token.
	Me(ctx context.Context) (User, error)

	// Register creates a new account. It does not authenticate.
	Register(ctx context.Context, reg Registration) (User, error)

	// SetToken installs the bearer token used on authenticated requests.
	SetToken(token string)

	// ClearToken removes the bearer token.
	ClearToken()
}

// StateStore is the persisted key/value storage the session survives
// restarts in.
type StateStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Logger defines the logging interface used by the Store.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Store owns the authentication lifecycle and is the sole writer of
// session state: the in-memory token/user pair and the persisted
// auth.token and auth.user keys.
//
// Invariant: token and user are set and cleared together. A non-empty
// token always has a user behind it.
//
// All public methods are thread-safe.
type Store struct {
	api    API
	state  StateStore
	logger Logger

	mu    sync.RWMutex
	token string
	user  *User
}

// NewStore creates a session store backed by the given boundary client
// and persisted state.
func NewStore(api API, state StateStore) *Store {
	return &Store{
		api:    api,
		state:  state,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the store.
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

// Login exchanges the email/password pair for a bearer token and
// establishes the session.
//
// On success the token is persisted first, then the authoritative
// profile is fetched from the boundary. If that secondary fetch fails
// the login still succeeds with a user record synthesised from the
// email (username = local part before "@"): a degraded profile beats a
// half-authenticated state.
//
// Fails with ErrAuthentication when the credential exchange itself is
// rejected or unreachable. A failed login never leaves a partial token.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", ErrAuthentication)
	}

	token, err := s.api.PasswordLogin(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	s.api.SetToken(token)
	if err := s.state.Set(ctx, keyToken, token); err != nil {
		// The in-memory session still works; only restoration after a
		// restart is affected.
		s.logger.Error("persisting token failed", "error", err)
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Warn("profile fetch after login failed, synthesising user",
			"email", email, "error", err)
		user = User{
			Email:    email,
			Username: localPart(email),
			IsActive: true,
		}
	}

	s.persistUser(ctx, user)

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	s.logger.Info("logged in", "user", user.Username)
	return nil
}

// Register creates an account at the boundary and immediately logs in
// with the same credentials, so a successful registration always ends
// in an authenticated session.
//
// Fails with ErrRegistration (carrying the server detail when provided)
// if account creation is rejected, for example on a duplicate email.
func (s *Store) Register(ctx context.Context, reg Registration) error {
	if reg.Email == "" || reg.Username == "" || reg.Password == "" {
		return fmt.Errorf("%w: email, username and password are required", ErrRegistration)
	}

	if _, err := s.api.Register(ctx, reg); err != nil {
		return fmt.Errorf("%w: %w", ErrRegistration, err)
	}

	return s.Login(ctx, reg.Email, reg.Password)
}

// Logout clears the session from memory and persisted storage.
// It is idempotent and has no failure mode: storage errors are logged
// and the in-memory state is cleared regardless.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.api.ClearToken()

	if err := s.state.Delete(ctx, keyToken); err != nil {
		s.logger.Error("clearing persisted token failed", "error", err)
	}
	if err := s.state.Delete(ctx, keyUser); err != nil {
		s.logger.Error("clearing persisted user failed", "error", err)
	}

	s.logger.Info("logged out")
}

// Restore rebuilds the session from persisted storage without a network
// call. If the token or the cached user is missing the session starts
// unauthenticated. If the cached user exists but does not parse, both
// keys are purged: partially corrupt state is never trusted.
func (s *Store) Restore(ctx context.Context) error {
	token, ok, err := s.state.Get(ctx, keyToken)
	if err != nil {
		return fmt.Errorf("reading persisted token: %w", err)
	}
	if !ok || token == "" {
		return nil
	}

	raw, ok, err := s.state.Get(ctx, keyUser)
	if err != nil {
		return fmt.Errorf("reading persisted user: %w", err)
	}
	if !ok {
		s.purge(ctx)
		return nil
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("cached user record corrupt, purging session", "error", err)
		s.purge(ctx)
		return nil
	}

	s.api.SetToken(token)

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	s.logger.Info("session restored", "user", user.Username)
	return nil
}

// Current returns the authenticated user, or nil when logged out.
func (s *Store) Current() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the bearer token, or the empty string when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a session is established.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// persistUser writes the user record to persisted storage.
func (s *Store) persistUser(ctx context.Context, user User) {
	raw, err := json.Marshal(user)
	if err != nil {
		s.logger.Error("encoding user record failed", "error", err)
		return
	}
	if err := s.state.Set(ctx, keyUser, string(raw)); err != nil {
		s.logger.Error("persisting user record failed", "error", err)
	}
}

// purge removes both persisted keys and clears any installed token.
func (s *Store) purge(ctx context.Context) {
	s.api.ClearToken()
	if err := s.state.Delete(ctx, keyToken); err != nil {
		s.logger.Error("purging persisted token failed", "error", err)
	}
	if err := s.state.Delete(ctx, keyUser); err != nil {
		s.logger.Error("purging persisted user failed", "error", err)
	}
}

// localPart returns the part of an email address before the "@".
func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
