// Package session gates authenticated operations. It owns the persisted
// session: the bearer token and the last-known user snapshot in the
// local store. The store is single-writer; only the guard touches the
// session row.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/linkdecklabs/linkdeck/internal/logger"
	"github.com/linkdecklabs/linkdeck/internal/store"
	"github.com/linkdecklabs/linkdeck/internal/validation"
	"github.com/linkdecklabs/linkdeck/pkg/types"
)

// Gateway is the slice of the remote API the guard needs.
type Gateway interface {
	Login(ctx context.Context, form types.LoginForm) (types.AuthResponse, error)
	Register(ctx context.Context, form types.RegisterForm) (types.AuthResponse, error)
	Me(ctx context.Context) (types.User, error)
}

// Guard holds the in-memory session and persists it to the store.
type Guard struct {
	store    *store.Store
	validate *validation.Validator
	log      *logger.Logger

	mu      sync.RWMutex
	gateway Gateway
	token   string
	user    types.User
	present bool
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger attaches a logger.
func WithLogger(l *logger.Logger) Option {
	return func(g *Guard) { g.log = l }
}

// WithValidator replaces the form validator.
func WithValidator(v *validation.Validator) Option {
	return func(g *Guard) { g.validate = v }
}

// New creates a Guard backed by the given store and restores any
// persisted session. The gateway is attached afterwards with SetGateway,
// since the gateway's token source is the guard itself.
func New(st *store.Store, opts ...Option) (*Guard, error) {
	g := &Guard{
		store:    st,
		validate: validation.New(),
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}

	token, user, ok, err := st.LoadSession()
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if ok {
		g.token = token
		g.user = user
		g.present = true
	}
	return g, nil
}

// SetGateway attaches the remote API client.
func (g *Guard) SetGateway(gw Gateway) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gateway = gw
}

// Token implements api.TokenSource.
func (g *Guard) Token() (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token, g.present
}

// IsAuthenticated reports whether a usable session is present. A token
// whose JWT expiry has passed counts as absent, so gated queries are
// suppressed instead of issued and rejected.
func (g *Guard) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.present {
		return false
	}
	return !tokenExpired(g.token)
}

// CurrentUser returns the last-known user snapshot.
func (g *Guard) CurrentUser() (types.User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.present {
		return types.User{}, false
	}
	return g.user, true
}

// Login validates the form locally, exchanges credentials and persists
// the session. Validation failures never reach the network.
func (g *Guard) Login(ctx context.Context, form types.LoginForm) error {
	if err := g.validate.Validate(form); err != nil {
		return err
	}

	gw := g.currentGateway()
	resp, err := gw.Login(ctx, form)
	if err != nil {
		return err
	}
	return g.establish(resp)
}

// Register validates the form locally (including the password
// confirmation, which is never sent) and persists the new session.
func (g *Guard) Register(ctx context.Context, form types.RegisterForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	if err := g.validate.Validate(form); err != nil {
		return err
	}

	gw := g.currentGateway()
	resp, err := gw.Register(ctx, form)
	if err != nil {
		return err
	}
	return g.establish(resp)
}

// RefreshUser refetches the current user and updates the snapshot.
// Suppressed entirely when no session is present.
func (g *Guard) RefreshUser(ctx context.Context) (types.User, error) {
	if !g.IsAuthenticated() {
		return types.User{}, types.ErrNotAuthenticated
	}

	gw := g.currentGateway()
	user, err := gw.Me(ctx)
	if err != nil {
		return types.User{}, err
	}

	g.mu.Lock()
	g.user = user
	token := g.token
	g.mu.Unlock()

	if err := g.store.SaveSession(token, user); err != nil {
		g.log.Warn("persist user snapshot failed", "error", err)
	}
	return user, nil
}

// Logout clears the persisted session and the in-memory state.
// Idempotent.
func (g *Guard) Logout() error {
	g.mu.Lock()
	g.token = ""
	g.user = types.User{}
	g.present = false
	g.mu.Unlock()

	return g.store.ClearSession()
}

func (g *Guard) establish(resp types.AuthResponse) error {
	g.mu.Lock()
	g.token = resp.AccessToken
	g.user = resp.User
	g.present = true
	g.mu.Unlock()

	if err := g.store.SaveSession(resp.AccessToken, resp.User); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	g.log.Debug("session established", "username", resp.User.Username)
	return nil
}

func (g *Guard) currentGateway() Gateway {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.gateway
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; verification is the server's job. Opaque tokens are treated
// as unexpired.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
