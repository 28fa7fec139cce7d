// Package mutation runs write operations against the gateway, tracks
// their pending/success/error status, and invalidates dependent cache
// keys on success.
package mutation

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/linkdecklabs/linkdeck/internal/api"
	"github.com/linkdecklabs/linkdeck/internal/cache"
	"github.com/linkdecklabs/linkdeck/internal/logger"
)

// Status of a mutation record.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Record is the transient state of the latest invocation of one logical
// mutation. A new invocation replaces the prior record, it is never
// merged into it.
type Record struct {
	// ID correlates the record with gateway log lines.
	ID     string
	Kind   string
	Status Status
	Result any
	Err    error

	// Message is the human-readable failure text: the server-provided
	// message when present, else the executor's fallback.
	Message string
}

// UserError carries the record's human-readable message while preserving
// the underlying cause for errors.Is/As.
type UserError struct {
	Message string
	Cause   error
}

func (e *UserError) Error() string { return e.Message }
func (e *UserError) Unwrap() error { return e.Cause }

// UserError converts a failed record into an error whose text is the
// human-readable message. Returns nil for non-failed records.
func (r Record) UserError() error {
	if r.Err == nil {
		return nil
	}
	return &UserError{Message: r.Message, Cause: r.Err}
}

// Executor owns one logical mutation. Concurrent Run calls follow the
// replace policy: the latest call supersedes the visible record, but
// earlier requests are not cancelled, so completions may arrive out of
// order and only the latest generation's outcome is surfaced.
type Executor struct {
	kind        string
	cache       *cache.Cache
	log         *logger.Logger
	invalidates []cache.Key
	fallback    string

	mu         sync.Mutex
	gen        uint64
	record     Record
	successObs map[int]func(Record)
	errorObs   map[int]func(Record)
	nextObs    int
}

// Option configures an Executor.
type Option func(*Executor)

// WithInvalidates sets the cache-key prefixes invalidated after a
// successful run.
func WithInvalidates(prefixes ...cache.Key) Option {
	return func(e *Executor) { e.invalidates = prefixes }
}

// WithFallbackMessage sets the generic failure text used when the server
// does not provide one.
func WithFallbackMessage(msg string) Option {
	return func(e *Executor) { e.fallback = msg }
}

// WithLogger attaches a logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Executor) { e.log = l }
}

// New creates an Executor for one logical mutation kind.
func New(kind string, c *cache.Cache, opts ...Option) *Executor {
	e := &Executor{
		kind:       kind,
		cache:      c,
		log:        logger.Discard(),
		fallback:   "operation failed",
		record:     Record{Kind: kind, Status: StatusIdle},
		successObs: make(map[int]func(Record)),
		errorObs:   make(map[int]func(Record)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnSuccess registers an observer notified after each successful run that
// is still the latest generation. The returned function removes it.
func (e *Executor) OnSuccess(fn func(Record)) func() {
	return e.addObserver(e.successObs, fn)
}

// OnError registers an observer notified after each failed run that is
// still the latest generation.
func (e *Executor) OnError(fn func(Record)) func() {
	return e.addObserver(e.errorObs, fn)
}

func (e *Executor) addObserver(set map[int]func(Record), fn func(Record)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextObs
	e.nextObs++
	set[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(set, id)
	}
}

// Run executes the operation. On success it invalidates the configured
// cache prefixes (in completion order, regardless of issue order) and
// notifies success observers; on failure it surfaces a human-readable
// message without touching cache state.
func (e *Executor) Run(ctx context.Context, op func(ctx context.Context) (any, error)) Record {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	rec := Record{
		ID:     uuid.NewString(),
		Kind:   e.kind,
		Status: StatusPending,
	}
	e.record = rec
	e.mu.Unlock()

	result, err := op(ctx)

	if err == nil {
		rec.Status = StatusSuccess
		rec.Result = result
	} else {
		rec.Status = StatusError
		rec.Err = err
		rec.Message = e.failureMessage(err)
	}

	e.mu.Lock()
	latest := gen == e.gen
	if latest {
		e.record = rec
	}
	var observers []func(Record)
	if latest {
		set := e.successObs
		if err != nil {
			set = e.errorObs
		}
		observers = make([]func(Record), 0, len(set))
		for _, fn := range set {
			observers = append(observers, fn)
		}
	}
	e.mu.Unlock()

	if err == nil {
		// The write reached the server, so dependent keys are stale even
		// when a newer run has superseded this record.
		for _, prefix := range e.invalidates {
			e.cache.Invalidate(prefix)
		}
		e.log.Debug("mutation succeeded", "kind", e.kind, "mutation_id", rec.ID)
	} else {
		e.log.Debug("mutation failed", "kind", e.kind, "mutation_id", rec.ID, "error", err)
	}

	for _, fn := range observers {
		fn(rec)
	}
	return rec
}

// Current returns the record of the latest invocation.
func (e *Executor) Current() Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.record
}

// failureMessage prefers the server's message, falling back to the
// executor's generic text.
func (e *Executor) failureMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 && apiErr.Message != "" {
		return apiErr.Message
	}
	return e.fallback
}
