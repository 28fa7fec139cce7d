// Package integration wires the full client core against an in-memory
// API server and exercises it end to end.
package integration

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linkdecklabs/linkdeck/internal/api"
	"github.com/linkdecklabs/linkdeck/internal/cache"
	"github.com/linkdecklabs/linkdeck/internal/links"
	"github.com/linkdecklabs/linkdeck/internal/session"
	"github.com/linkdecklabs/linkdeck/internal/store"
	"github.com/linkdecklabs/linkdeck/pkg/types"
)

// env is one fully wired client: store on a temp dir, guard, gateway
// against the fake server, cache and link manager. Each test gets its
// own isolated instance.
type env struct {
	t       *testing.T
	server  *fakeServer
	ts      *httptest.Server
	dataDir string
	store   *store.Store
	guard   *session.Guard
	client  *api.Client
	cache   *cache.Cache
	manager *links.Manager
}

func newEnv(t *testing.T) *env {
	t.Helper()

	server := newFakeServer()
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	dataDir := t.TempDir()
	e := &env{t: t, server: server, ts: ts, dataDir: dataDir}
	e.wire()
	return e
}

// wire builds the client core on top of the env's store directory.
// Called again by reopen to simulate a process restart.
func (e *env) wire() {
	e.t.Helper()

	st := store.New()
	require.NoError(e.t, st.Open(e.dataDir))

	guard, err := session.New(st)
	require.NoError(e.t, err)

	client := api.NewClient(e.ts.URL, api.WithTokenSource(guard))
	guard.SetGateway(client)

	c := cache.New(cache.WithTTL(time.Minute), cache.WithPersister(st))
	mgr := links.New(c, client, guard)

	e.store = st
	e.guard = guard
	e.client = client
	e.cache = c
	e.manager = mgr

	e.t.Cleanup(func() {
		c.Close()
		_ = st.Close()
	})
}

// reopen closes the store and rebuilds the core from disk, simulating a
// fresh process against the same data directory.
func (e *env) reopen() {
	e.t.Helper()
	e.cache.Close()
	require.NoError(e.t, e.store.Close())
	e.wire()
}

// register creates an account and leaves the env logged in.
func (e *env) register(email, username, password string) types.User {
	e.t.Helper()
	err := e.guard.Register(e.t.Context(), types.RegisterForm{
		Email:           email,
		Username:        username,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(e.t, err)
	user, ok := e.guard.CurrentUser()
	require.True(e.t, ok)
	return user
}

// addLink creates a link and returns it.
func (e *env) addLink(title, url string) types.Link {
	e.t.Helper()
	link, err := e.manager.Create(e.t.Context(), types.LinkDraft{Title: title, URL: url})
	require.NoError(e.t, err)
	return link
}
