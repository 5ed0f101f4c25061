/* auth.go
 * Contains the auth state of the console: whether a valid token is held and whether the operator has switched
 * to admin mode. Both values are persisted through the preference store and only ever written from here
 */

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"chess-tournament-ui/api/store"

	"github.com/golang-jwt/jwt/v4"
)

const namespace = "auth"

var (
	tokenKey     = store.Key{Namespace: namespace, Name: "token"}
	adminModeKey = store.Key{Namespace: namespace, Name: "admin_mode"}
)

// Authenticator exchanges credentials for a bearer token
type Authenticator interface {
	Login(ctx context.Context, username string, password string) (string, error)
}

// Snapshot is a point in time copy of the auth flags
type Snapshot struct {
	Username      string
	Authenticated bool
	AdminMode     bool
}

type State struct {
	mu            sync.RWMutex
	prefs         store.Interface
	backend       Authenticator
	now           func() time.Time
	token         string
	username      string
	authenticated bool
	adminMode     bool
}

// NewState creates an unauthenticated State. Call Init to restore a previously stored session
func NewState(prefs store.Interface, backend Authenticator) *State {
	return &State{
		prefs:   prefs,
		backend: backend,
		now:     time.Now,
	}
}

// SetClock replaces the time source used for expiry checks
func (s *State) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// claims is the subset of the token payload the console reads
type claims struct {
	jwt.RegisteredClaims
}

// decodeToken reads the subject and expiry of a token without verifying its signature. The signature is checked by
// the backend on every request
func decodeToken(raw string) (claims, error) {
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &c); err != nil {
		return claims{}, fmt.Errorf("malformed token: %w", err)
	}
	return c, nil
}

// expired compares at millisecond precision. A token without an exp claim never expires
func expired(c claims, now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Unix()*1000 < now.UnixMilli()
}

// Init restores the stored session.
// Preconditions: the preference store is open
// Postconditions: if the stored token is missing, malformed or expired, both the token and the admin mode preference
// are removed and the state is unauthenticated
func (s *State) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.prefs.Get(ctx, tokenKey)
	if errors.Is(err, store.ErrNotFound) {
		s.resetLocked()
		return s.clearStoredLocked(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to read stored token: %w", err)
	}

	c, err := decodeToken(raw)
	if err != nil || expired(c, s.now()) {
		s.resetLocked()
		return s.clearStoredLocked(ctx)
	}

	adminMode, err := store.GetBool(ctx, s.prefs, adminModeKey)
	if err != nil {
		return fmt.Errorf("failed to read admin mode: %w", err)
	}

	s.token = raw
	s.username = c.Subject
	s.authenticated = true
	s.adminMode = adminMode
	return nil
}

// Login calls the backend and stores the returned token. On failure the backend error is returned unchanged so its
// detail message reaches the operator as is
func (s *State) Login(ctx context.Context, username string, password string) error {
	token, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c, err := decodeToken(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prefs.Set(ctx, tokenKey, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	s.token = token
	s.username = c.Subject
	s.authenticated = true
	return nil
}

// Logout clears the stored token and admin mode preference
func (s *State) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	return s.clearStoredLocked(ctx)
}

// ToggleAdminMode flips and persists the admin mode flag. It is not checked against Authenticated; callers only
// offer the toggle to authenticated operators
func (s *State) ToggleAdminMode(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := !s.adminMode
	if err := store.SetBool(ctx, s.prefs, adminModeKey, next); err != nil {
		return s.adminMode, fmt.Errorf("failed to store admin mode: %w", err)
	}
	s.adminMode = next
	return next, nil
}

// Token returns the current bearer token, or an empty string when logged out
func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *State) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// AdminMode reports whether admin controls should be shown. Admin mode is only effective while authenticated
func (s *State) AdminMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated && s.adminMode
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Username:      s.username,
		Authenticated: s.authenticated,
		AdminMode:     s.authenticated && s.adminMode,
	}
}

func (s *State) resetLocked() {
	s.token = ""
	s.username = ""
	s.authenticated = false
	s.adminMode = false
}

func (s *State) clearStoredLocked(ctx context.Context) error {
	if err := s.prefs.Delete(ctx, tokenKey); err != nil {
		return fmt.Errorf("failed to clear stored token: %w", err)
	}
	if err := s.prefs.Delete(ctx, adminModeKey); err != nil {
		return fmt.Errorf("failed to clear admin mode: %w", err)
	}
	return nil
}
