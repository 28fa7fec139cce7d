// Package search converts a rapidly-changing text input into rate-limited
// queries against the profile search endpoint. The pipeline is an explicit
// state machine over one variable, the committed query string; display
// state is always a pure function of the latest committed value, never of
// network completion order.
package search

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/linkdecklabs/linkdeck/internal/cache"
	"github.com/linkdecklabs/linkdeck/internal/logger"
	"github.com/linkdecklabs/linkdeck/pkg/types"
)

// State names the pipeline's display states.
type State string

const (
	// StateIdle: empty input, prompt for a query, no network call.
	StateIdle State = "idle"
	// StateTooShort: input below the minimum length, no network call.
	StateTooShort State = "too-short"
	// StateDebouncing: the quiet-period timer is running.
	StateDebouncing State = "debouncing"
	// StateSearching: exactly one request in flight for the committed value.
	StateSearching State = "searching"
	// StateResults and StateEmpty are terminal for a committed value until
	// the input changes again.
	StateResults State = "results"
	StateEmpty   State = "empty"
	// StateError: the fetch for the committed value failed; previous
	// results for other queries stay cached under their own keys.
	StateError State = "error"
)

// Snapshot is the externally visible pipeline state.
type Snapshot struct {
	State State
	// Input is the current raw input text.
	Input string
	// Committed is the query that owns Results; set once the debounce
	// interval elapses uninterrupted.
	Committed string
	Results   []types.ProfileHit
	Err       error
}

// Gateway is the slice of the remote API the pipeline needs.
type Gateway interface {
	SearchProfiles(ctx context.Context, query string, limit int) ([]types.ProfileHit, error)
}

// Pipeline debounces input and keys results by the committed query
// string. Results resolve through the query cache, so a superseded
// request's resolution is accepted into the cache under its own key and
// becomes inert rather than overwriting a fresher display.
type Pipeline struct {
	cache  *cache.Cache
	gw     Gateway
	log    *logger.Logger
	delay  time.Duration
	minLen int
	limit  int

	mu        sync.Mutex
	timer     *time.Timer
	input     string
	committed string
	state     State
	results   []types.ProfileHit
	err       error
	subs      map[int]func(Snapshot)
	nextSub   int
	closed    bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDelay sets the debounce quiet period.
func WithDelay(d time.Duration) Option {
	return func(p *Pipeline) { p.delay = d }
}

// WithMinQueryLen sets the minimum committed query length.
func WithMinQueryLen(n int) Option {
	return func(p *Pipeline) { p.minLen = n }
}

// WithLimit sets the result limit requested from the server.
func WithLimit(n int) Option {
	return func(p *Pipeline) { p.limit = n }
}

// WithLogger attaches a logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// New creates a Pipeline in the idle state.
func New(c *cache.Cache, gw Gateway, opts ...Option) *Pipeline {
	p := &Pipeline{
		cache:  c,
		gw:     gw,
		log:    logger.Discard(),
		delay:  500 * time.Millisecond,
		minLen: 3,
		limit:  10,
		state:  StateIdle,
		subs:   make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Input feeds one keystroke's worth of text. Every call resets the owned
// debounce timer; only a timer that elapses uninterrupted commits the
// query.
func (p *Pipeline) Input(text string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}

	p.input = text
	p.stopTimerLocked()

	switch {
	case text == "":
		p.state = StateIdle
		p.committed = ""
		p.results = nil
		p.err = nil
	case utf8.RuneCountInString(text) < p.minLen:
		p.state = StateTooShort
		p.committed = ""
		p.results = nil
		p.err = nil
	default:
		p.state = StateDebouncing
		query := text
		p.timer = time.AfterFunc(p.delay, func() { p.commit(query) })
	}

	notify, snap := p.notifyLocked()
	p.mu.Unlock()
	for _, fn := range notify {
		fn(snap)
	}
}

// commit runs when the debounce timer elapses uninterrupted.
func (p *Pipeline) commit(query string) {
	p.mu.Lock()
	if p.closed || p.input != query {
		// A newer keystroke owns its own timer.
		p.mu.Unlock()
		return
	}
	p.committed = query
	p.state = StateSearching
	notify, snap := p.notifyLocked()
	p.mu.Unlock()
	for _, fn := range notify {
		fn(snap)
	}

	key := cache.NewKey("search", query)
	hits, err := cache.Fetch(context.Background(), p.cache, key,
		func(ctx context.Context) ([]types.ProfileHit, error) {
			return p.gw.SearchProfiles(ctx, query, p.limit)
		})

	p.mu.Lock()
	if p.closed || p.committed != query {
		// The committed value moved on; this resolution stays cached
		// under its own key but is not surfaced.
		p.mu.Unlock()
		return
	}
	switch {
	case err != nil:
		p.err = err
		p.state = StateError
	case len(hits) == 0:
		p.results = nil
		p.err = nil
		p.state = StateEmpty
	default:
		p.results = hits
		p.err = nil
		p.state = StateResults
	}
	notify, snap = p.notifyLocked()
	p.mu.Unlock()
	for _, fn := range notify {
		fn(snap)
	}
}

// Snapshot returns the current display state.
func (p *Pipeline) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Subscribe registers a callback invoked on every state transition. The
// returned function removes the subscription.
func (p *Pipeline) Subscribe(fn func(Snapshot)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// Close stops the owned timer and suppresses further transitions.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.stopTimerLocked()
}

// stopTimerLocked releases the current timer, if any. Callers hold mu.
func (p *Pipeline) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Pipeline) snapshotLocked() Snapshot {
	return Snapshot{
		State:     p.state,
		Input:     p.input,
		Committed: p.committed,
		Results:   p.results,
		Err:       p.err,
	}
}

func (p *Pipeline) notifyLocked() ([]func(Snapshot), Snapshot) {
	notify := make([]func(Snapshot), 0, len(p.subs))
	for _, fn := range p.subs {
		notify = append(notify, fn)
	}
	return notify, p.snapshotLocked()
}
