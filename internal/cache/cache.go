// Package cache implements the keyed query cache at the center of the
// client core. Each entry tracks its value, freshness and in-flight
// status; concurrent fetches for one key are deduplicated, and explicit
// prefix invalidation forces dependent keys to refetch.
//
// The cache is an injected instance, not ambient state: it is created at
// application start and closed at shutdown or logout, so tests run
// against isolated instances.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/linkdecklabs/linkdeck/internal/logger"
)

// Loader produces the value for a key. At most one loader runs per key
// at any time.
type Loader func(ctx context.Context) (any, error)

// Persister receives successfully fetched values for durable snapshots.
// Implemented by the local store; optional.
type Persister interface {
	SaveSnapshot(key string, value any) error
}

// Cache is the process-wide query cache. Any component may read any key;
// only mutation completions (via Invalidate) force a key stale.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	log     *logger.Logger
	persist Persister
	entries map[Key]*entry
	closed  bool
	wg      sync.WaitGroup
}

// entry is the cached state for one key.
type entry struct {
	value     any
	hasValue  bool
	fetchedAt time.Time
	stale     bool
	err       error
	loader    Loader
	inflight  *call
	subs      map[int]func(any)
	nextSub   int

	// invalidated records an Invalidate that arrived while a load was in
	// flight. That load began before the mutation, so its result must not
	// settle as fresh.
	invalidated bool
}

// call is a fetch shared by every concurrent caller of the same key.
type call struct {
	done  chan struct{}
	value any
	err   error
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the freshness window. A value older than the TTL is
// refetched on the next read even without explicit invalidation.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) { c.ttl = d }
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithPersister attaches a durable snapshot writer.
func WithPersister(p Persister) Option {
	return func(c *Cache) { c.persist = p }
}

// WithLogger attaches a logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Cache) { c.log = l }
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		ttl:     30 * time.Second,
		now:     time.Now,
		log:     logger.Discard(),
		entries: make(map[Key]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close waits for background refetches to settle. After Close the cache
// keeps serving cached values but spawns no new background work.
func (c *Cache) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.wg.Wait()
}

// Fetch returns the value for key, loading it when absent or stale.
// Concurrent callers of the same key share a single loader run. When the
// loader fails and a previous value exists, that value is returned along
// with the error (stale-while-error); the cached value is never cleared
// by a failure.
func (c *Cache) Fetch(ctx context.Context, key Key, loader Loader) (any, error) {
	c.mu.Lock()
	e := c.ensure(key)
	e.loader = loader

	if e.hasValue && !e.stale && c.now().Sub(e.fetchedAt) < c.ttl {
		value := e.value
		c.mu.Unlock()
		return value, nil
	}

	if e.inflight != nil {
		// Attach to the fetch already in flight instead of issuing a
		// duplicate request.
		shared := e.inflight
		c.mu.Unlock()
		select {
		case <-shared.done:
			return shared.value, shared.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	shared := &call{done: make(chan struct{})}
	e.inflight = shared
	// This load starts now, so it observes any mutation already
	// invalidated; only invalidations arriving mid-flight matter.
	e.invalidated = false
	c.mu.Unlock()

	value, err := loader(ctx)
	notify := c.settle(key, shared, value, err)
	for _, fn := range notify {
		fn(shared.value)
	}
	return shared.value, shared.err
}

// settle records a finished load and returns the subscriber callbacks to
// invoke. On failure the previous value stays in place.
func (c *Cache) settle(key Key, shared *call, value any, err error) []func(any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.ensure(key)
	e.inflight = nil
	e.err = err

	if err != nil {
		if e.hasValue {
			shared.value = e.value
		}
		shared.err = err
		close(shared.done)
		return nil
	}

	e.value = value
	e.hasValue = true
	e.fetchedAt = c.now()
	// An invalidation that raced this load keeps the entry stale: the
	// value predates the mutation that fired it.
	e.stale = e.invalidated
	shared.value = value
	close(shared.done)

	if e.invalidated {
		e.invalidated = false
		if len(e.subs) > 0 && e.loader != nil && !c.closed {
			loader := e.loader
			c.wg.Add(1)
			go func() {
				defer c.wg.Done()
				if _, gerr := c.Fetch(context.Background(), key, loader); gerr != nil {
					c.log.Debug("background refetch failed", "key", key, "error", gerr)
				}
			}()
		}
	}

	if c.persist != nil {
		if perr := c.persist.SaveSnapshot(string(key), value); perr != nil {
			c.log.Warn("persist snapshot failed", "key", key, "error", perr)
		}
	}

	// Exactly one notification per value transition.
	notify := make([]func(any), 0, len(e.subs))
	for _, fn := range e.subs {
		notify = append(notify, fn)
	}
	return notify
}

// Subscribe registers a callback invoked once per value transition of
// key. The returned function removes the subscription.
func (c *Cache) Subscribe(key Key, fn func(any)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.ensure(key)
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(e.subs, id)
	}
}

// Invalidate marks every entry under prefix stale. Entries with active
// subscribers are refetched immediately in the background; the rest
// reload on their next read. Invalidations arrive in mutation completion
// order, so consumers treat them as "go re-fetch truth", not as an
// ordered event log.
func (c *Cache) Invalidate(prefix Key) {
	c.mu.Lock()
	type refetch struct {
		key    Key
		loader Loader
	}
	var refetches []refetch
	for key, e := range c.entries {
		if !key.HasPrefix(prefix) {
			continue
		}
		e.stale = true
		if e.inflight != nil {
			// The in-flight load began before this invalidation; flag it
			// so settle does not mark its result fresh.
			e.invalidated = true
			continue
		}
		if len(e.subs) > 0 && e.loader != nil && !c.closed {
			refetches = append(refetches, refetch{key: key, loader: e.loader})
		}
	}
	if !c.closed {
		c.wg.Add(len(refetches))
	}
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return
	}
	for _, r := range refetches {
		go func(r refetch) {
			defer c.wg.Done()
			if _, err := c.Fetch(context.Background(), r.key, r.loader); err != nil {
				c.log.Debug("background refetch failed", "key", r.key, "error", err)
			}
		}(r)
	}
}

// Peek returns the cached value for key without triggering a load.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.hasValue {
		return nil, false
	}
	return e.value, true
}

// ensure returns the entry for key, creating it if needed. Callers hold mu.
func (c *Cache) ensure(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{subs: make(map[int]func(any))}
		c.entries[key] = e
	}
	return e
}

// Fetch loads a typed value through c. It adapts the untyped cache to a
// typed loader; a zero value is returned alongside any error when nothing
// was previously cached.
func Fetch[T any](ctx context.Context, c *Cache, key Key, loader func(ctx context.Context) (T, error)) (T, error) {
	value, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, err
	}
	return typed, err
}
