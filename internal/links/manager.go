// Package links implements the authoritative client view of one user's
// ordered link collection: cached reads, validated writes through the
// mutation executors, local filtering, and drag-reorder candidate
// computation.
package links

import (
	"context"
	"strconv"
	"strings"

	"github.com/linkdecklabs/linkdeck/internal/cache"
	"github.com/linkdecklabs/linkdeck/internal/logger"
	"github.com/linkdecklabs/linkdeck/internal/mutation"
	"github.com/linkdecklabs/linkdeck/internal/validation"
	"github.com/linkdecklabs/linkdeck/pkg/types"
)

// Cache-key prefixes owned by this package.
const (
	PrefixLinks     cache.Key = "links"
	PrefixDashboard cache.Key = "dashboard"
)

// Authorizer gates authenticated operations. Implemented by the session
// guard.
type Authorizer interface {
	IsAuthenticated() bool
}

// Gateway is the slice of the remote API the manager needs.
type Gateway interface {
	Links(ctx context.Context, includeInactive bool) ([]types.Link, error)
	CreateLink(ctx context.Context, draft types.LinkDraft) (types.Link, error)
	UpdateLink(ctx context.Context, id string, patch types.LinkPatch) (types.Link, error)
	DeleteLink(ctx context.Context, id string) error
	ReorderLinks(ctx context.Context, ids []string) error
}

// Manager mediates between the UI, the query cache and the mutation
// executors for the link collection.
type Manager struct {
	cache    *cache.Cache
	gw       Gateway
	auth     Authorizer
	validate *validation.Validator
	log      *logger.Logger

	create  *mutation.Executor
	update  *mutation.Executor
	remove  *mutation.Executor
	reorder *mutation.Executor
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger attaches a logger.
func WithLogger(l *logger.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithValidator replaces the form validator.
func WithValidator(v *validation.Validator) Option {
	return func(m *Manager) { m.validate = v }
}

// New creates a Manager. Create, update and delete invalidate both the
// links and dashboard prefixes; reorder invalidates links only, since
// aggregate counts are unaffected by order.
func New(c *cache.Cache, gw Gateway, auth Authorizer, opts ...Option) *Manager {
	m := &Manager{
		cache:    c,
		gw:       gw,
		auth:     auth,
		validate: validation.New(),
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.create = mutation.New("create-link", c,
		mutation.WithInvalidates(PrefixLinks, PrefixDashboard),
		mutation.WithFallbackMessage("failed to create link"),
		mutation.WithLogger(m.log))
	m.update = mutation.New("update-link", c,
		mutation.WithInvalidates(PrefixLinks, PrefixDashboard),
		mutation.WithFallbackMessage("failed to update link"),
		mutation.WithLogger(m.log))
	m.remove = mutation.New("delete-link", c,
		mutation.WithInvalidates(PrefixLinks, PrefixDashboard),
		mutation.WithFallbackMessage("failed to delete link"),
		mutation.WithLogger(m.log))
	m.reorder = mutation.New("reorder-links", c,
		mutation.WithInvalidates(PrefixLinks),
		mutation.WithFallbackMessage("failed to reorder links"),
		mutation.WithLogger(m.log))

	return m
}

// ListKey is the cache key for a links query.
func ListKey(includeInactive bool) cache.Key {
	return cache.NewKey("links", strconv.FormatBool(includeInactive))
}

// List returns the ordered collection from the cache, loading it when
// absent or stale. Without a session the query is not issued at all.
func (m *Manager) List(ctx context.Context, includeInactive bool) ([]types.Link, error) {
	if !m.auth.IsAuthenticated() {
		return nil, types.ErrNotAuthenticated
	}
	return cache.Fetch(ctx, m.cache, ListKey(includeInactive),
		func(ctx context.Context) ([]types.Link, error) {
			return m.gw.Links(ctx, includeInactive)
		})
}

// Create validates the draft locally (non-empty title, normalizable URL)
// and appends a new link. Validation failures are rejected before any
// request is made.
func (m *Manager) Create(ctx context.Context, draft types.LinkDraft) (types.Link, error) {
	if !m.auth.IsAuthenticated() {
		return types.Link{}, types.ErrNotAuthenticated
	}

	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return types.Link{}, types.ErrTitleRequired
	}
	normalized, err := types.NormalizeURL(draft.URL)
	if err != nil {
		return types.Link{}, err
	}
	draft.URL = normalized
	if err := m.validate.Validate(draft); err != nil {
		return types.Link{}, err
	}

	rec := m.create.Run(ctx, func(ctx context.Context) (any, error) {
		return m.gw.CreateLink(ctx, draft)
	})
	if rec.Err != nil {
		return types.Link{}, rec.UserError()
	}
	return rec.Result.(types.Link), nil
}

// Update applies a field patch. When the URL field is present it goes
// through the same normalization as Create.
func (m *Manager) Update(ctx context.Context, id string, patch types.LinkPatch) (types.Link, error) {
	if !m.auth.IsAuthenticated() {
		return types.Link{}, types.ErrNotAuthenticated
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return types.Link{}, types.ErrTitleRequired
	}
	if patch.URL != nil {
		normalized, err := types.NormalizeURL(*patch.URL)
		if err != nil {
			return types.Link{}, err
		}
		patch.URL = &normalized
	}

	rec := m.update.Run(ctx, func(ctx context.Context) (any, error) {
		return m.gw.UpdateLink(ctx, id, patch)
	})
	if rec.Err != nil {
		return types.Link{}, rec.UserError()
	}
	return rec.Result.(types.Link), nil
}

// Delete removes a link. Confirmation is an upstream UI concern.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if !m.auth.IsAuthenticated() {
		return types.ErrNotAuthenticated
	}

	rec := m.remove.Run(ctx, func(ctx context.Context) (any, error) {
		return nil, m.gw.DeleteLink(ctx, id)
	})
	return rec.UserError()
}

// SetActive toggles the active flag. Idempotent beyond the duplicate
// request itself.
func (m *Manager) SetActive(ctx context.Context, id string, active bool) (types.Link, error) {
	return m.Update(ctx, id, types.LinkPatch{IsActive: &active})
}

// Reorder submits the full ordered id list as currently displayed. When
// a filter is active this is the visible subsequence only; the server is
// the tie-breaking authority for final positions.
func (m *Manager) Reorder(ctx context.Context, orderedIDs []string) error {
	if !m.auth.IsAuthenticated() {
		return types.ErrNotAuthenticated
	}

	rec := m.reorder.Run(ctx, func(ctx context.Context) (any, error) {
		return nil, m.gw.ReorderLinks(ctx, orderedIDs)
	})
	return rec.UserError()
}

// Observe registers observers on every mutation executor, used to drive
// user notifications. The returned function removes them all.
func (m *Manager) Observe(onSuccess, onError func(mutation.Record)) func() {
	executors := []*mutation.Executor{m.create, m.update, m.remove, m.reorder}
	removers := make([]func(), 0, len(executors)*2)
	for _, e := range executors {
		if onSuccess != nil {
			removers = append(removers, e.OnSuccess(onSuccess))
		}
		if onError != nil {
			removers = append(removers, e.OnError(onError))
		}
	}
	return func() {
		for _, remove := range removers {
			remove()
		}
	}
}
