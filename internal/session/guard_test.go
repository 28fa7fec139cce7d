package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkdecklabs/linkdeck/internal/store"
	"github.com/linkdecklabs/linkdeck/pkg/types"
)

type fakeGateway struct {
	loginCalls    int
	registerCalls int
	meCalls       int
	resp          types.AuthResponse
	err           error
}

func (f *fakeGateway) Login(ctx context.Context, form types.LoginForm) (types.AuthResponse, error) {
	f.loginCalls++
	return f.resp, f.err
}

func (f *fakeGateway) Register(ctx context.Context, form types.RegisterForm) (types.AuthResponse, error) {
	f.registerCalls++
	return f.resp, f.err
}

func (f *fakeGateway) Me(ctx context.Context) (types.User, error) {
	f.meCalls++
	return f.resp.User, f.err
}

func newTestGuard(t *testing.T, gw Gateway) (*Guard, *store.Store) {
	t.Helper()
	st := store.New()
	require.NoError(t, st.Open(t.TempDir()))
	t.Cleanup(func() { _ = st.Close() })

	g, err := New(st)
	require.NoError(t, err)
	g.SetGateway(gw)
	return g, st
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "u1", "exp": exp.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestLoginEstablishesSession(t *testing.T) {
	user := types.User{ID: "u1", Email: "me@example.com", Username: "me"}
	gw := &fakeGateway{resp: types.AuthResponse{AccessToken: "tok", User: user}}
	g, st := newTestGuard(t, gw)

	assert.False(t, g.IsAuthenticated())

	err := g.Login(context.Background(), types.LoginForm{Email: "me@example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.True(t, g.IsAuthenticated())
	token, ok := g.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	got, ok := g.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, "me", got.Username)

	// Session survives a new guard over the same store.
	g2, err := New(st)
	require.NoError(t, err)
	assert.True(t, g2.IsAuthenticated())
}

func TestLoginValidationFailureIssuesNoRequest(t *testing.T) {
	gw := &fakeGateway{}
	g, _ := newTestGuard(t, gw)

	err := g.Login(context.Background(), types.LoginForm{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	assert.Zero(t, gw.loginCalls, "validation errors never reach the gateway")
}

func TestRegisterValidatesLocally(t *testing.T) {
	gw := &fakeGateway{}
	g, _ := newTestGuard(t, gw)

	form := types.RegisterForm{
		Email:           "me@example.com",
		Username:        "me3",
		Password:        "secret1",
		ConfirmPassword: "different",
	}
	err := g.Register(context.Background(), form)
	assert.ErrorIs(t, err, types.ErrPasswordMismatch)
	assert.Zero(t, gw.registerCalls)
}

func TestRegisterSuccess(t *testing.T) {
	user := types.User{ID: "u2", Username: "newuser"}
	gw := &fakeGateway{resp: types.AuthResponse{AccessToken: "tok2", User: user}}
	g, _ := newTestGuard(t, gw)

	form := types.RegisterForm{
		Email:           "new@example.com",
		Username:        "newuser",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	require.NoError(t, g.Register(context.Background(), form))
	assert.Equal(t, 1, gw.registerCalls)
	assert.True(t, g.IsAuthenticated())
}

func TestLoginSurfacesServerError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("invalid credentials")}
	g, _ := newTestGuard(t, gw)

	err := g.Login(context.Background(), types.LoginForm{Email: "me@example.com", Password: "wrong1"})
	require.Error(t, err)
	assert.False(t, g.IsAuthenticated())
}

func TestLogoutClearsSession(t *testing.T) {
	gw := &fakeGateway{resp: types.AuthResponse{AccessToken: "tok", User: types.User{ID: "u1"}}}
	g, st := newTestGuard(t, gw)

	require.NoError(t, g.Login(context.Background(), types.LoginForm{Email: "me@example.com", Password: "secret1"}))
	require.NoError(t, g.Logout())

	assert.False(t, g.IsAuthenticated())
	_, ok := g.CurrentUser()
	assert.False(t, ok)

	_, _, ok, err := st.LoadSession()
	require.NoError(t, err)
	assert.False(t, ok)

	// Logout again is fine.
	assert.NoError(t, g.Logout())
}

func TestExpiredTokenCountsAsAbsent(t *testing.T) {
	gw := &fakeGateway{}
	g, st := newTestGuard(t, gw)

	expired := signedToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, st.SaveSession(expired, types.User{ID: "u1"}))

	g2, err := New(st)
	require.NoError(t, err)
	g2.SetGateway(gw)

	assert.False(t, g2.IsAuthenticated())

	// RefreshUser is suppressed, not issued-then-rejected.
	_, err = g2.RefreshUser(context.Background())
	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
	assert.Zero(t, gw.meCalls)

	_ = g
}

func TestValidTokenAuthenticates(t *testing.T) {
	gw := &fakeGateway{}
	_, st := newTestGuard(t, gw)

	valid := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, st.SaveSession(valid, types.User{ID: "u1"}))

	g, err := New(st)
	require.NoError(t, err)
	assert.True(t, g.IsAuthenticated())
}

func TestOpaqueTokenTreatedAsUnexpired(t *testing.T) {
	assert.False(t, tokenExpired("not-a-jwt"))
}

func TestRefreshUserUpdatesSnapshot(t *testing.T) {
	user := types.User{ID: "u1", Username: "me", Bio: "old"}
	gw := &fakeGateway{resp: types.AuthResponse{AccessToken: "tok", User: user}}
	g, st := newTestGuard(t, gw)

	require.NoError(t, g.Login(context.Background(), types.LoginForm{Email: "me@example.com", Password: "secret1"}))

	gw.resp.User.Bio = "new"
	got, err := g.RefreshUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", got.Bio)

	_, stored, ok, err := st.LoadSession()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", stored.Bio)
}
