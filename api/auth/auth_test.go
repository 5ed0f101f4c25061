/* auth_test.go
 * Contains unit tests for auth.go
 */

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"chess-tournament-ui/api/external"
	"chess-tournament-ui/api/store"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	token string
	err   error
	calls int
}

func (f *fakeBackend) Login(ctx context.Context, username string, password string) (string, error) {
	f.calls++
	return f.token, f.err
}

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func signToken(t *testing.T, subject string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newTestState(prefs store.Interface, backend Authenticator) *State {
	s := NewState(prefs, backend)
	s.SetClock(func() time.Time { return fixedNow })
	return s
}

// region Init tests

func TestInit_NoStoredToken(t *testing.T) {
	prefs := store.NewMemoryStore()
	s := newTestState(prefs, &fakeBackend{})

	require.NoError(t, s.Init(context.Background()))

	assert.False(t, s.Authenticated())
	assert.False(t, s.AdminMode())
	assert.Empty(t, s.Token())
}

func TestInit_ValidTokenRestoresAdminMode(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewMemoryStore()
	token := signToken(t, "alice", fixedNow.Add(time.Hour))
	require.NoError(t, prefs.Set(ctx, tokenKey, token))
	require.NoError(t, store.SetBool(ctx, prefs, adminModeKey, true))

	s := newTestState(prefs, &fakeBackend{})
	require.NoError(t, s.Init(ctx))

	snap := s.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.True(t, snap.AdminMode)
	assert.Equal(t, "alice", snap.Username)
	assert.Equal(t, token, s.Token())
}

func TestInit_ExpiredTokenClearsEverything(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewMemoryStore()
	require.NoError(t, prefs.Set(ctx, tokenKey, signToken(t, "alice", fixedNow.Add(-time.Second))))
	require.NoError(t, store.SetBool(ctx, prefs, adminModeKey, true))

	s := newTestState(prefs, &fakeBackend{})
	require.NoError(t, s.Init(ctx))

	assert.False(t, s.Authenticated())
	assert.False(t, s.AdminMode())

	_, err := prefs.Get(ctx, tokenKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = prefs.Get(ctx, adminModeKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestInit_MalformedTokenTreatedAsExpired(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewMemoryStore()
	require.NoError(t, prefs.Set(ctx, tokenKey, "not.a.token"))
	require.NoError(t, store.SetBool(ctx, prefs, adminModeKey, true))

	s := newTestState(prefs, &fakeBackend{})
	require.NoError(t, s.Init(ctx))

	assert.False(t, s.Authenticated())
	assert.False(t, s.AdminMode())
	_, err := prefs.Get(ctx, adminModeKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestExpired(t *testing.T) {
	tests := []struct {
		name    string
		expires *jwt.NumericDate
		want    bool
	}{
		{"no exp claim", nil, false},
		{"one second ago", jwt.NewNumericDate(fixedNow.Add(-time.Second)), true},
		{"exactly now", jwt.NewNumericDate(fixedNow), false},
		{"in the future", jwt.NewNumericDate(fixedNow.Add(time.Minute)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: tt.expires}}
			assert.Equal(t, tt.want, expired(c, fixedNow))
		})
	}
}

// endregion

// region Login / Logout tests

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewMemoryStore()
	token := signToken(t, "alice", fixedNow.Add(time.Hour))
	s := newTestState(prefs, &fakeBackend{token: token})

	require.NoError(t, s.Login(ctx, "alice", "secret"))

	assert.True(t, s.Authenticated())
	assert.Equal(t, "alice", s.Snapshot().Username)
	stored, err := prefs.Get(ctx, tokenKey)
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}

func TestLogin_FailurePropagatesDetail(t *testing.T) {
	backend := &fakeBackend{err: &external.APIError{StatusCode: 401, Detail: "Incorrect username or password"}}
	s := newTestState(store.NewMemoryStore(), backend)

	err := s.Login(context.Background(), "bob", "wrong")

	require.Error(t, err)
	assert.Equal(t, "Incorrect username or password", err.Error())
	assert.False(t, s.Authenticated())
	assert.Equal(t, 1, backend.calls)
}

func TestLogin_TransportFailure(t *testing.T) {
	backend := &fakeBackend{err: errors.Join(external.ErrTransport, errors.New("connection refused"))}
	s := newTestState(store.NewMemoryStore(), backend)

	err := s.Login(context.Background(), "bob", "secret")

	assert.ErrorIs(t, err, external.ErrTransport)
	assert.False(t, s.Authenticated())
}

func TestLogin_MalformedTokenRejected(t *testing.T) {
	s := newTestState(store.NewMemoryStore(), &fakeBackend{token: "garbage"})

	err := s.Login(context.Background(), "alice", "secret")

	assert.Error(t, err)
	assert.False(t, s.Authenticated())
}

func TestLogout_ClearsTokenAndAdminMode(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewMemoryStore()
	s := newTestState(prefs, &fakeBackend{token: signToken(t, "alice", fixedNow.Add(time.Hour))})
	require.NoError(t, s.Login(ctx, "alice", "secret"))
	_, err := s.ToggleAdminMode(ctx)
	require.NoError(t, err)
	require.True(t, s.AdminMode())

	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.Authenticated())
	assert.False(t, s.AdminMode())
	assert.Empty(t, s.Token())
	_, err = prefs.Get(ctx, tokenKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = prefs.Get(ctx, adminModeKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// endregion

// region admin mode tests

func TestToggleAdminMode_Persists(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewMemoryStore()
	s := newTestState(prefs, &fakeBackend{token: signToken(t, "alice", fixedNow.Add(time.Hour))})
	require.NoError(t, s.Login(ctx, "alice", "secret"))

	on, err := s.ToggleAdminMode(ctx)
	require.NoError(t, err)
	assert.True(t, on)
	stored, err := store.GetBool(ctx, prefs, adminModeKey)
	require.NoError(t, err)
	assert.True(t, stored)

	off, err := s.ToggleAdminMode(ctx)
	require.NoError(t, err)
	assert.False(t, off)
}

func TestAdminMode_IneffectiveWhileLoggedOut(t *testing.T) {
	ctx := context.Background()
	s := newTestState(store.NewMemoryStore(), &fakeBackend{})

	_, err := s.ToggleAdminMode(ctx)
	require.NoError(t, err)

	assert.False(t, s.AdminMode())
	assert.False(t, s.Snapshot().AdminMode)
}

// endregion
