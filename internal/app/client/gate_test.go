package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"liquidtrack/internal/app/client/store"
	"liquidtrack/internal/utils/logger"
)

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) SignIn(ctx context.Context, email, password string) (store.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(store.Session), args.Error(1)
}

func (m *MockAuth) SignUp(ctx context.Context, email, password string) error {
	return m.Called(ctx, email, password).Error(0)
}

func (m *MockAuth) SignOut(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuth) Validate(ctx context.Context, token string) (store.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(store.Session), args.Error(1)
}

type hookCounter struct {
	activated   int
	deactivated int
}

func (h *hookCounter) hooks() GateHooks {
	return GateHooks{
		OnActivate:   func(context.Context) error { h.activated++; return nil },
		OnDeactivate: func() { h.deactivated++ },
	}
}

func newTestGate(auth Authenticator, storage Storage) (*Gate, *hookCounter) {
	h := &hookCounter{}
	return NewGate(auth, storage, h.hooks(), logger.Discard()), h
}

var sess = store.Session{Token: "tok", Login: "ops@example.com"}

func TestGate_InitialUnknown(t *testing.T) {
	g, h := newTestGate(new(MockAuth), NewMemoryStorage())
	assert.Equal(t, StateUnknown, g.State())
	assert.Empty(t, g.Token())
	assert.Zero(t, h.activated)
}

func TestGate_ResolveNoToken(t *testing.T) {
	auth := new(MockAuth)
	g, h := newTestGate(auth, NewMemoryStorage())

	require.NoError(t, g.Resolve(context.Background()))
	assert.Equal(t, StateUnauthenticated, g.State())
	assert.Zero(t, h.activated)
	auth.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
}

func TestGate_ResolveStoredToken(t *testing.T) {
	auth := new(MockAuth)
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(keySessionToken, "tok"))
	auth.On("Validate", mock.Anything, "tok").Return(sess, nil)

	g, h := newTestGate(auth, storage)
	var seen []GateState
	g.OnChange(func(s GateState) { seen = append(seen, s) })

	require.NoError(t, g.Resolve(context.Background()))
	assert.Equal(t, StateAuthenticated, g.State())
	assert.Equal(t, "tok", g.Token())
	assert.Equal(t, "ops@example.com", g.Login())
	assert.Equal(t, 1, h.activated)
	assert.Equal(t, []GateState{StateAuthenticated}, seen)
}

func TestGate_ResolveExpiredToken(t *testing.T) {
	auth := new(MockAuth)
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(keySessionToken, "old"))
	auth.On("Validate", mock.Anything, "old").
		Return(store.Session{}, &store.AuthError{Status: 401, Err: store.ErrUnauthenticated})

	g, h := newTestGate(auth, storage)
	require.NoError(t, g.Resolve(context.Background()))

	assert.Equal(t, StateUnauthenticated, g.State())
	assert.Zero(t, h.activated)
	token, _ := storage.Get(keySessionToken)
	assert.Empty(t, token)
}

func TestGate_ResolveNetworkError(t *testing.T) {
	auth := new(MockAuth)
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(keySessionToken, "tok"))
	auth.On("Validate", mock.Anything, "tok").Return(store.Session{}, &store.AuthError{Err: errors.New("dial tcp")})

	g, _ := newTestGate(auth, storage)
	assert.Error(t, g.Resolve(context.Background()))
	assert.Equal(t, StateUnauthenticated, g.State())
	token, _ := storage.Get(keySessionToken)
	assert.Equal(t, "tok", token)
}

func TestGate_SignInSignOut(t *testing.T) {
	auth := new(MockAuth)
	storage := NewMemoryStorage()
	auth.On("SignIn", mock.Anything, "ops@example.com", "secret123").Return(sess, nil)
	auth.On("SignOut", mock.Anything, "tok").Return(nil)

	g, h := newTestGate(auth, storage)
	ctx := context.Background()
	require.NoError(t, g.Resolve(ctx))

	require.NoError(t, g.SignIn(ctx, " ops@example.com ", "secret123"))
	assert.Equal(t, StateAuthenticated, g.State())
	token, _ := storage.Get(keySessionToken)
	assert.Equal(t, "tok", token)

	require.NoError(t, g.SignOut(ctx))
	assert.Equal(t, StateUnauthenticated, g.State())
	assert.Empty(t, g.Token())
	token, _ = storage.Get(keySessionToken)
	assert.Empty(t, token)

	assert.Equal(t, 1, h.activated)
	assert.Equal(t, 1, h.deactivated)
	auth.AssertExpectations(t)
}

func TestGate_SignInRejected(t *testing.T) {
	auth := new(MockAuth)
	authErr := &store.AuthError{Status: 401, Message: "invalid login or password", Err: store.ErrUnauthenticated}
	auth.On("SignIn", mock.Anything, "ops@example.com", "bad").Return(store.Session{}, authErr)

	g, h := newTestGate(auth, NewMemoryStorage())
	ctx := context.Background()
	require.NoError(t, g.Resolve(ctx))

	err := g.SignIn(ctx, "ops@example.com", "bad")
	var ae *store.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "invalid login or password", ae.Error())
	assert.Equal(t, StateUnauthenticated, g.State())
	assert.Zero(t, h.activated)

	assert.Error(t, g.SignIn(ctx, "", "x"))
}

func TestGate_SignUpSignsIn(t *testing.T) {
	auth := new(MockAuth)
	auth.On("SignUp", mock.Anything, "new@example.com", "secret123").Return(nil)
	auth.On("SignIn", mock.Anything, "new@example.com", "secret123").
		Return(store.Session{Token: "t2", Login: "new@example.com"}, nil)

	g, h := newTestGate(auth, NewMemoryStorage())
	require.NoError(t, g.SignUp(context.Background(), "new@example.com", "secret123"))
	assert.Equal(t, StateAuthenticated, g.State())
	assert.Equal(t, 1, h.activated)
}

func TestGate_CompleteSignIn(t *testing.T) {
	auth := new(MockAuth)
	auth.On("Validate", mock.Anything, "oauth-token").
		Return(store.Session{Token: "oauth-token", Login: "ms@example.com"}, nil)

	g, _ := newTestGate(auth, NewMemoryStorage())
	require.NoError(t, g.CompleteSignIn(context.Background(), "oauth-token"))
	assert.Equal(t, "ms@example.com", g.Login())

	assert.Error(t, g.CompleteSignIn(context.Background(), " "))
}

func TestGate_Expire(t *testing.T) {
	auth := new(MockAuth)
	auth.On("SignIn", mock.Anything, "ops@example.com", "secret123").Return(sess, nil)

	g, h := newTestGate(auth, NewMemoryStorage())
	ctx := context.Background()
	require.NoError(t, g.SignIn(ctx, "ops@example.com", "secret123"))

	g.Expire()
	g.Expire()
	assert.Equal(t, StateUnauthenticated, g.State())
	assert.Equal(t, 1, h.deactivated)
}

func TestGate_ActivatesSync(t *testing.T) {
	st := newFakeStore(sampleIssues()...)
	s := newTestSync(st, nil)
	auth := new(MockAuth)
	auth.On("SignIn", mock.Anything, "ops@example.com", "secret123").Return(sess, nil)
	auth.On("SignOut", mock.Anything, "tok").Return(nil)

	g := NewGate(auth, NewMemoryStorage(), GateHooks{
		OnActivate:   s.Activate,
		OnDeactivate: s.Deactivate,
	}, logger.Discard())
	ctx := context.Background()

	require.NoError(t, g.SignIn(ctx, "ops@example.com", "secret123"))
	assert.True(t, s.Active())
	assert.Len(t, s.Issues(), 3)

	require.NoError(t, g.SignOut(ctx))
	assert.False(t, s.Active())
	assert.Empty(t, s.Issues())
	assert.Equal(t, 1, st.unsubs)
}
