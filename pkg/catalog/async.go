package catalog

import (
	"context"
	"sync"

	"github.com/goliatone/go-plantillas/internal/model"
)

type tableState struct {
	entries []Entry
	loading bool
	loaded  bool
	// generation invalidates fetches started before the last Invalidate.
	generation int
}

// AsyncResolver fetches each catalog once in the background and serves the
// cached entries afterwards. Loading flags are tracked per table.
type AsyncResolver struct {
	fetcher Fetcher
	cfg     config

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	tables map[string]*tableState
	closed bool
	// pending counts fetch goroutines; idle is signalled when it drops to 0.
	pending int
	idle    *sync.Cond
}

// NewAsyncResolver constructs an AsyncResolver around fetcher.
func NewAsyncResolver(fetcher Fetcher, opts ...ResolverOption) *AsyncResolver {
	ctx, cancel := context.WithCancel(context.Background())
	r := &AsyncResolver{
		fetcher: fetcher,
		cfg:     newConfig(opts...),
		ctx:     ctx,
		cancel:  cancel,
		tables:  make(map[string]*tableState),
	}
	r.idle = sync.NewCond(&r.mu)
	return r
}

// Resolve implements Resolver. The first call for a table starts the fetch
// and reports Loading; the ctx argument is not used to bound the background
// fetch, which lives until Close.
func (r *AsyncResolver) Resolve(_ context.Context, field model.Field) Result {
	table, ok := dispatch(field)
	if !ok || r == nil || r.fetcher == nil {
		return Result{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return Result{}
	}

	state := r.tables[table]
	if state == nil {
		state = &tableState{}
		r.tables[table] = state
	}
	if state.loaded {
		return Result{Data: cloneEntries(state.entries)}
	}
	if !state.loading {
		state.loading = true
		r.start(table, state.generation)
	}
	return Result{Loading: true}
}

// Prefetch starts background fetches for tables that have not been requested.
func (r *AsyncResolver) Prefetch(tables ...string) {
	for _, table := range tables {
		if !KnownTable(table) {
			continue
		}
		r.Resolve(r.ctx, model.Field{DataSource: model.DataSourceDatabase, DatabaseTable: table})
	}
}

// Loading reports whether table has a fetch in flight.
func (r *AsyncResolver) Loading(table string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.tables[table]
	return state != nil && state.loading
}

// Invalidate drops the cached entries of the given tables (all tables when
// none are given). The next Resolve starts a fresh fetch; fetches already in
// flight are ignored when they settle.
func (r *AsyncResolver) Invalidate(tables ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(tables) == 0 {
		for _, state := range r.tables {
			invalidate(state)
		}
		return
	}
	for _, table := range tables {
		if state := r.tables[table]; state != nil {
			invalidate(state)
		}
	}
}

// Wait blocks until every background fetch has settled, including fetches
// started by concurrent Resolve calls while it waits.
func (r *AsyncResolver) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.pending > 0 {
		r.idle.Wait()
	}
}

// Close cancels in-flight fetches and discards their results. Resolve returns
// empty results afterwards.
func (r *AsyncResolver) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.cancel()
	return nil
}

func invalidate(state *tableState) {
	state.generation++
	state.entries = nil
	state.loaded = false
	state.loading = false
}

// start must be called with r.mu held.
func (r *AsyncResolver) start(table string, generation int) {
	r.pending++
	go func() {
		entries, err := r.fetcher.Fetch(r.ctx, table)
		if err != nil {
			r.cfg.logger.WithError(&FetchError{Table: table, Err: err}).Warn("catalog: background fetch failed")
			entries = []Entry{}
		}
		if entries == nil {
			entries = []Entry{}
		}

		r.mu.Lock()
		state := r.tables[table]
		if r.closed || state == nil || state.generation != generation {
			r.settle()
			r.mu.Unlock()
			return
		}
		state.entries = entries
		state.loading = false
		state.loaded = true
		notify := r.cfg.onUpdate
		if notify == nil {
			r.settle()
		}
		r.mu.Unlock()

		if notify != nil {
			notify(table)
			r.mu.Lock()
			r.settle()
			r.mu.Unlock()
		}
	}()
}

// settle must be called with r.mu held.
func (r *AsyncResolver) settle() {
	r.pending--
	if r.pending == 0 {
		r.idle.Broadcast()
	}
}
