package home

import (
	"context"
	"errors"
	"testing"

	"github.com/CamKhongFine/iot/internal/bus"
)

type fakeLister struct {
	homes []Home
	err   error
	calls int
}

func (f *fakeLister) ListHomes(_ context.Context) ([]Home, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.homes, nil
}

type memState struct {
	values map[string]string
}

func newMemState() *memState {
	return &memState{values: make(map[string]string)}
}

func (m *memState) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memState) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memState) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func twoHomes() []Home {
	return []Home{
		{ID: 1, Name: "Main House", OwnerID: 1, Role: RoleOwner, Type: TypeHouse},
		{ID: 2, Name: "Cabin", OwnerID: 1, Role: RoleAdmin, Type: TypeVacation},
	}
}

func TestLoadHomes_SelectsFirstAndPersists(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	reg := NewRegistry(&fakeLister{homes: twoHomes()}, state, bus.New[Change]())

	reg.LoadHomes(ctx)

	if got := reg.CurrentID(); got != 1 {
		t.Errorf("CurrentID() = %d, want 1", got)
	}
	if state.values[keySelected] != "1" {
		t.Errorf("persisted selection = %q, want %q", state.values[keySelected], "1")
	}
	if len(reg.Homes()) != 2 {
		t.Errorf("Homes() len = %d, want 2", len(reg.Homes()))
	}
	if reg.Loading() {
		t.Error("Loading() = true after load completed")
	}
}

func TestLoadHomes_RestoresValidPersistedSelection(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	state.values[keySelected] = "2"
	reg := NewRegistry(&fakeLister{homes: twoHomes()}, state, bus.New[Change]())

	reg.LoadHomes(ctx)

	if got := reg.CurrentID(); got != 2 {
		t.Errorf("CurrentID() = %d, want persisted 2", got)
	}
	// No re-persist needed: the stored value was already correct.
	if state.values[keySelected] != "2" {
		t.Errorf("persisted selection = %q, want untouched %q", state.values[keySelected], "2")
	}
}

func TestLoadHomes_StalePersistedSelectionFallsBack(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	state.values[keySelected] = "9"
	reg := NewRegistry(&fakeLister{homes: twoHomes()}, state, bus.New[Change]())

	reg.LoadHomes(ctx)

	if got := reg.CurrentID(); got != 1 {
		t.Errorf("CurrentID() = %d, want fallback 1", got)
	}
	if state.values[keySelected] != "1" {
		t.Errorf("persisted selection = %q, want rewritten %q", state.values[keySelected], "1")
	}
}

func TestLoadHomes_UnparseablePersistedSelection(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	state.values[keySelected] = "garbage"
	reg := NewRegistry(&fakeLister{homes: twoHomes()}, state, bus.New[Change]())

	reg.LoadHomes(ctx)

	if got := reg.CurrentID(); got != 1 {
		t.Errorf("CurrentID() = %d, want fallback 1", got)
	}
}

func TestLoadHomes_EmptySet(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(&fakeLister{homes: nil}, newMemState(), bus.New[Change]())

	reg.LoadHomes(ctx)

	if got := reg.CurrentID(); got != 0 {
		t.Errorf("CurrentID() = %d, want 0 for empty set", got)
	}
	if reg.Current() != nil {
		t.Error("Current() non-nil for empty set")
	}
}

func TestLoadHomes_FetchFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(&fakeLister{err: errors.New("boom")}, newMemState(), bus.New[Change]())

	reg.LoadHomes(ctx) // must not panic or propagate

	if len(reg.Homes()) != 0 {
		t.Errorf("Homes() len = %d after failure, want 0", len(reg.Homes()))
	}
	if reg.Loading() {
		t.Error("Loading() stuck after failure")
	}
	if reg.CurrentID() != 0 {
		t.Errorf("CurrentID() = %d after failure, want 0", reg.CurrentID())
	}
}

func TestLoadHomes_PublishesInitialSelection(t *testing.T) {
	ctx := context.Background()
	changes := bus.New[Change]()
	reg := NewRegistry(&fakeLister{homes: twoHomes()}, newMemState(), changes)

	var events []int64
	changes.Subscribe(func(ev Change) { events = append(events, ev.HomeID) })

	reg.LoadHomes(ctx)

	if len(events) != 1 || events[0] != 1 {
		t.Errorf("events = %v, want [1]", events)
	}
}

func TestLoadHomes_ListenerSeesCommittedState(t *testing.T) {
	ctx := context.Background()
	changes := bus.New[Change]()
	reg := NewRegistry(&fakeLister{homes: twoHomes()}, newMemState(), changes)

	// Selection repair must run to completion before listeners fire:
	// from inside the handler the registry already holds the loaded set
	// and the announced identifier.
	changes.Subscribe(func(ev Change) {
		if got := reg.CurrentID(); got != ev.HomeID {
			t.Errorf("listener observed CurrentID() = %d, event says %d", got, ev.HomeID)
		}
		if ev.HomeID != 0 && reg.Current() == nil {
			t.Error("listener observed selection without a backing home record")
		}
	})

	reg.LoadHomes(ctx)
}

func TestSwitchHome_Valid(t *testing.T) {
	ctx := context.Background()
	state := newMemState()
	changes := bus.New[Change]()
	reg := NewRegistry(&fakeLister{homes: twoHomes()}, state, changes)
	reg.LoadHomes(ctx)

	var events []int64
	changes.Subscribe(func(ev Change) { events = append(events, ev.HomeID) })

	if err := reg.SwitchHome(ctx, 2); err != nil {
		t.Fatalf("SwitchHome(2) error = %v", err)
	}

	if got := reg.CurrentID(); got != 2 {
		t.Errorf("CurrentID() = %d, want 2", got)
	}
	if state.values[keySelected] != "2" {
		t.Errorf("persisted selection = %q, want %q", state.values[keySelected], "2")
	}
	if len(events) != 1 || events[0] != 2 {
		t.Errorf("events = %v, want exactly [2]", events)
	}
}

func TestSwitchHome_UnknownID(t *testing.T) {
	ctx := context.Background()
	changes := bus.New[Change]()
	reg := NewRegistry(&fakeLister{homes: twoHomes()}, newMemState(), changes)
	reg.LoadHomes(ctx)

	notified := 0
	changes.Subscribe(func(Change) { notified++ })

	err := reg.SwitchHome(ctx, 99)
	if !errors.Is(err, ErrUnknownHome) {
		t.Fatalf("SwitchHome(99) error = %v, want ErrUnknownHome", err)
	}

	if got := reg.CurrentID(); got != 1 {
		t.Errorf("CurrentID() = %d, want unchanged 1", got)
	}
	if notified != 0 {
		t.Errorf("notifications = %d for rejected switch, want 0", notified)
	}
}

func TestRefresh_PreservesValidSelection(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{homes: twoHomes()}
	reg := NewRegistry(lister, newMemState(), bus.New[Change]())
	reg.LoadHomes(ctx)

	if err := reg.SwitchHome(ctx, 2); err != nil {
		t.Fatalf("SwitchHome(2) error = %v", err)
	}

	reg.Refresh(ctx)

	if got := reg.CurrentID(); got != 2 {
		t.Errorf("CurrentID() = %d after refresh, want preserved 2", got)
	}
	if lister.calls != 2 {
		t.Errorf("ListHomes calls = %d, want 2", lister.calls)
	}
}

func TestRefresh_SelectionRemovedFallsBack(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{homes: twoHomes()}
	state := newMemState()
	changes := bus.New[Change]()
	reg := NewRegistry(lister, state, changes)
	reg.LoadHomes(ctx)
	if err := reg.SwitchHome(ctx, 2); err != nil {
		t.Fatalf("SwitchHome(2) error = %v", err)
	}

	var events []int64
	changes.Subscribe(func(ev Change) { events = append(events, ev.HomeID) })

	// Home 2 disappears from the freshly loaded set.
	lister.homes = twoHomes()[:1]
	reg.Refresh(ctx)

	if got := reg.CurrentID(); got != 1 {
		t.Errorf("CurrentID() = %d, want fallback 1", got)
	}
	if state.values[keySelected] != "1" {
		t.Errorf("persisted selection = %q, want rewritten %q", state.values[keySelected], "1")
	}
	if len(events) != 1 || events[0] != 1 {
		t.Errorf("events = %v, want [1]", events)
	}
}

func TestRefresh_SetBecomesEmptyClearsSelection(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{homes: twoHomes()}
	changes := bus.New[Change]()
	reg := NewRegistry(lister, newMemState(), changes)
	reg.LoadHomes(ctx)

	var events []int64
	changes.Subscribe(func(ev Change) { events = append(events, ev.HomeID) })

	lister.homes = nil
	reg.Refresh(ctx)

	if got := reg.CurrentID(); got != 0 {
		t.Errorf("CurrentID() = %d, want cleared", got)
	}
	if len(events) != 1 || events[0] != 0 {
		t.Errorf("events = %v, want [0] announcing cleared selection", events)
	}
}

// CurrentID always references a member of the home set whenever the set
// is non-empty.
func TestSelectionInvariant(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{homes: twoHomes()}
	reg := NewRegistry(lister, newMemState(), bus.New[Change]())

	check := func(stage string) {
		t.Helper()
		homes := reg.Homes()
		if len(homes) == 0 {
			return
		}
		if !containsHome(homes, reg.CurrentID()) {
			t.Errorf("%s: CurrentID() = %d not in home set", stage, reg.CurrentID())
		}
	}

	reg.LoadHomes(ctx)
	check("after load")
	_ = reg.SwitchHome(ctx, 2)
	check("after switch")
	_ = reg.SwitchHome(ctx, 42)
	check("after rejected switch")
	lister.homes = twoHomes()[1:]
	reg.Refresh(ctx)
	check("after shrinking refresh")
}
