package home

import (
	"context"
	"strconv"
	"sync"

	"github.com/CamKhongFine/iot/internal/bus"
)

// keySelected is the persisted state key owned by this package.
const keySelected = "home.selected"

// Lister is the slice of the boundary client the registry needs.
type Lister interface {
	ListHomes(ctx context.Context) ([]Home, error)
}

// StateStore is the persisted key/value storage for the selection.
type StateStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Logger defines the logging interface used by the Registry.
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

// Registry owns the set of homes visible to the current session and the
// single "current home" selection. It is the exclusive writer of that
// selection and the only producer on the change bus.
//
// Invariant: whenever the home set is non-empty, the current-home
// identifier refers to a member of the set. A zero identifier means no
// selection (set empty or not yet loaded).
//
// All public methods are thread-safe.
type Registry struct {
	api     Lister
	state   StateStore
	changes *bus.Bus[Change]
	logger  Logger

	mu        sync.RWMutex
	homes     []Home
	currentID int64
	loading   bool
	loaded    bool
}

// NewRegistry creates a home registry that announces selection changes
// on the given bus.
func NewRegistry(api Lister, state StateStore, changes *bus.Bus[Change]) *Registry {
	return &Registry{
		api:     api,
		state:   state,
		changes: changes,
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// LoadHomes fetches the full home list for the authenticated user and
// repairs the current-home selection against it.
//
// A fetch failure is not surfaced: the home set becomes empty (never
// partially populated), loading clears, and the error is logged: an
// empty-homes state is itself a valid, renderable outcome.
//
// Selection repair, in order:
//  1. An already-current home that survived the reload stays current.
//  2. Otherwise a persisted selection that exists in the new set wins.
//  3. Otherwise the first home in the loaded set becomes current and
//     that choice is persisted immediately, so a reload is stable.
//  4. An empty set clears the selection.
//
// The repaired state is fully committed before any change notification
// is published, so listeners never observe a home identifier that is
// not yet backed by a loaded record.
func (r *Registry) LoadHomes(ctx context.Context) {
	r.mu.Lock()
	r.loading = true
	prevID := r.currentID
	r.mu.Unlock()

	homes, err := r.api.ListHomes(ctx)
	if err != nil {
		r.logger.Error("loading homes failed", "error", err)
		homes = nil
	}

	newID := r.repairSelection(ctx, homes, prevID)

	r.mu.Lock()
	r.homes = homes
	r.currentID = newID
	r.loading = false
	r.loaded = true
	r.mu.Unlock()

	r.logger.Info("homes loaded", "count", len(homes), "current", newID)

	if newID != prevID {
		r.changes.Publish(Change{HomeID: newID})
	}
}

// Refresh re-runs LoadHomes on demand, for example after creating a
// home. The current selection is preserved when it remains valid.
func (r *Registry) Refresh(ctx context.Context) {
	r.LoadHomes(ctx)
}

// SwitchHome makes homeID the current home.
//
// The identifier must reference a home in the loaded set; otherwise the
// call is rejected with ErrUnknownHome and no state changes: switching
// never silently defaults to something else.
//
// On success the new selection is persisted and one change notification
// carrying the identifier is published. The broadcast is the only
// coupling between the registry and data fetchers.
func (r *Registry) SwitchHome(ctx context.Context, homeID int64) error {
	r.mu.Lock()
	if !containsHome(r.homes, homeID) {
		r.mu.Unlock()
		r.logger.Warn("rejecting switch to unknown home", "home", homeID)
		return ErrUnknownHome
	}
	r.currentID = homeID
	r.mu.Unlock()

	r.persistSelection(ctx, homeID)
	r.logger.Info("switched home", "home", homeID)

	r.changes.Publish(Change{HomeID: homeID})
	return nil
}

// Homes returns a copy of the loaded home set.
func (r *Registry) Homes() []Home {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Home, len(r.homes))
	copy(out, r.homes)
	return out
}

// CurrentID returns the current home identifier, or zero when no home
// is selected.
func (r *Registry) CurrentID() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currentID
}

// Current returns the current home record, or nil when no home is
// selected.
func (r *Registry) Current() *Home {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.homes {
		if r.homes[i].ID == r.currentID {
			h := r.homes[i]
			return &h
		}
	}
	return nil
}

// Loading reports whether a home-list fetch is in flight.
func (r *Registry) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

// Loaded reports whether at least one load has completed.
func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// repairSelection resolves the current-home identifier for a freshly
// loaded set and persists the choice when it had to change.
func (r *Registry) repairSelection(ctx context.Context, homes []Home, prevID int64) int64 {
	if len(homes) == 0 {
		// The persisted key is left in place: a transient load failure
		// should not forget a stable choice.
		return 0
	}

	if prevID != 0 && containsHome(homes, prevID) {
		return prevID
	}

	if persisted, ok := r.persistedSelection(ctx); ok && containsHome(homes, persisted) {
		return persisted
	}

	first := homes[0].ID
	r.persistSelection(ctx, first)
	return first
}

// persistedSelection reads the stored home identifier, if any.
func (r *Registry) persistedSelection(ctx context.Context) (int64, bool) {
	raw, ok, err := r.state.Get(ctx, keySelected)
	if err != nil {
		r.logger.Error("reading persisted selection failed", "error", err)
		return 0, false
	}
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		r.logger.Warn("persisted selection unparseable, ignoring", "value", raw)
		return 0, false
	}
	return id, true
}

// persistSelection writes the selection; storage failures are logged,
// not surfaced: only restart stability is affected.
func (r *Registry) persistSelection(ctx context.Context, homeID int64) {
	if err := r.state.Set(ctx, keySelected, strconv.FormatInt(homeID, 10)); err != nil {
		r.logger.Error("persisting selection failed", "home", homeID, "error", err)
	}
}

func containsHome(homes []Home, id int64) bool {
	for i := range homes {
		if homes[i].ID == id {
			return true
		}
	}
	return false
}
