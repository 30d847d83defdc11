package fetcher

import (
	"context"
	"sync"

	"github.com/CamKhongFine/iot/internal/bus"
	"github.com/CamKhongFine/iot/internal/home"
)

// FetchFunc loads the resource for a resolved home identifier.
type FetchFunc[T any] func(ctx context.Context, homeID int64) (T, error)

// Logger defines the logging interface used by the Fetcher.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Config describes a home-scoped fetcher.
type Config[T any] struct {
	// Name identifies the fetcher in logs (e.g. "rooms", "alerts").
	Name string

	// Fetch loads the resource for a home. Required.
	Fetch FetchFunc[T]

	// Default is the value exposed when no home is selected.
	Default T

	// CurrentHome resolves the current home identifier; zero means no
	// selection. Required.
	CurrentHome func() int64

	// Changes is the bus home-change notifications arrive on. Required.
	Changes *bus.Bus[home.Change]
}

// Fetcher keeps one home-scoped resource in sync with the current home.
//
// It fetches on Start, on every home-change notification, and on
// explicit Refetch. A fetch failure never propagates to callers: the
// previous data stays displayed, the error is recorded, and loading
// clears.
//
// Stale-response suppression: every initiated fetch is tagged with a
// generation and the home identifier it was issued for. A completed
// fetch applies its result only if it is still the most recently
// initiated one and its home is still current: a slow response for a
// previously selected home can never overwrite a newer selection's
// data. In-flight requests are not cancelled; suppression substitutes
// for cancellation.
//
// All public methods are thread-safe.
type Fetcher[T any] struct {
	name        string
	fetch       FetchFunc[T]
	def         T
	currentHome func() int64
	changes     *bus.Bus[home.Change]
	logger      Logger

	ctx   context.Context
	wg    sync.WaitGroup
	subID string

	mu      sync.Mutex
	data    T
	loading bool
	lastErr error
	gen     uint64
	started bool
}

// New creates a fetcher from the given configuration. The fetcher is
// inert until Start is called.
func New[T any](cfg Config[T]) *Fetcher[T] {
	return &Fetcher[T]{
		name:        cfg.Name,
		fetch:       cfg.Fetch,
		def:         cfg.Default,
		currentHome: cfg.CurrentHome,
		changes:     cfg.Changes,
		logger:      noopLogger{},
		data:        cfg.Default,
	}
}

// SetLogger sets the logger for the fetcher.
func (f *Fetcher[T]) SetLogger(logger Logger) {
	f.logger = logger
}

// Start subscribes to home-change notifications and performs the
// initial fetch. ctx bounds the lifetime of all fetches this fetcher
// issues. Calling Start twice is a no-op.
func (f *Fetcher[T]) Start(ctx context.Context) {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return
	}
	f.started = true
	f.mu.Unlock()

	f.ctx = ctx
	f.subID = f.changes.Subscribe(func(home.Change) {
		f.trigger()
	})
	f.trigger()
}

// Stop unsubscribes from home-change notifications. Every Start must be
// paired with a Stop on teardown so listeners do not leak. In-flight
// fetches complete (and are discarded if stale) but no new ones start
// from notifications.
func (f *Fetcher[T]) Stop() {
	f.mu.Lock()
	if !f.started {
		f.mu.Unlock()
		return
	}
	f.started = false
	f.mu.Unlock()

	f.changes.Unsubscribe(f.subID)
}

// Refetch re-runs the fetch for the current home on demand.
func (f *Fetcher[T]) Refetch() {
	f.trigger()
}

// Data returns the last applied result, or the default value when no
// home is selected or nothing has been fetched yet.
func (f *Fetcher[T]) Data() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

// Loading reports whether a fetch is in flight whose result has not
// been applied or superseded.
func (f *Fetcher[T]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Err returns the error recorded by the most recent completed fetch,
// or nil if it succeeded.
func (f *Fetcher[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Mutate applies a local transformation to the current data, for
// optimistic updates ahead of server confirmation. The change is
// superseded entirely by the next applied fetch; callers that need a
// rollback apply the inverse transformation themselves.
func (f *Fetcher[T]) Mutate(fn func(T) T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = fn(f.data)
}

// Wait blocks until all in-flight fetches have completed. Intended for
// headless callers and tests; the UI reads Loading instead.
func (f *Fetcher[T]) Wait() {
	f.wg.Wait()
}

// trigger initiates a fetch for the current home. The generation bump
// happens synchronously so a later trigger always supersedes an earlier
// one, even before either fetch has run.
func (f *Fetcher[T]) trigger() {
	homeID := f.currentHome()

	f.mu.Lock()
	f.gen++
	gen := f.gen

	if homeID == 0 {
		// No home selected: yield the default immediately, no request.
		f.data = f.def
		f.lastErr = nil
		f.loading = false
		f.mu.Unlock()
		f.logger.Debug("no home selected, showing default", "fetcher", f.name)
		return
	}

	f.loading = true
	f.mu.Unlock()

	f.wg.Add(1)
	go f.run(gen, homeID)
}

// run executes one tagged fetch and applies or discards its result.
func (f *Fetcher[T]) run(gen uint64, homeID int64) {
	defer f.wg.Done()

	data, err := f.fetch(f.ctx, homeID)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen || homeID != f.currentHome() {
		f.logger.Debug("discarding stale response",
			"fetcher", f.name, "home", homeID)
		return
	}

	f.loading = false
	if err != nil {
		// Keep the previous data on screen; record the failure.
		f.lastErr = err
		f.logger.Warn("fetch failed", "fetcher", f.name, "home", homeID, "error", err)
		return
	}

	f.data = data
	f.lastErr = nil
}
