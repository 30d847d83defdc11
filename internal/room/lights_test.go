package room

import (
	"context"
	"errors"
	"testing"

	"github.com/CamKhongFine/iot/internal/bus"
	"github.com/CamKhongFine/iot/internal/fetcher"
	"github.com/CamKhongFine/iot/internal/home"
)

type fakeLightAPI struct {
	err   error
	calls int
}

func (f *fakeLightAPI) SetLight(_ context.Context, _ int64, _ bool) error {
	f.calls++
	return f.err
}

// roomsFetcher builds a started fetcher pre-loaded with the given rooms.
func roomsFetcher(t *testing.T, rooms []Room) *fetcher.Fetcher[[]Room] {
	t.Helper()

	f := fetcher.New(fetcher.Config[[]Room]{
		Name: "rooms",
		Fetch: func(context.Context, int64) ([]Room, error) {
			return rooms, nil
		},
		CurrentHome: func() int64 { return 1 },
		Changes:     bus.New[home.Change](),
	})
	f.Start(context.Background())
	t.Cleanup(f.Stop)
	f.Wait()
	return f
}

func TestLights_SetOptimistic(t *testing.T) {
	ctx := context.Background()
	f := roomsFetcher(t, []Room{
		{ID: 1, Name: "Kitchen"},
		{ID: 2, Name: "Bedroom"},
	})
	api := &fakeLightAPI{}
	lights := NewLights(api, f)

	if err := lights.Set(ctx, 1, true); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	rooms := f.Data()
	if !rooms[0].Telemetry.LightOn {
		t.Error("room 1 light not on after Set")
	}
	if rooms[1].Telemetry.LightOn {
		t.Error("room 2 light changed by Set on room 1")
	}
	if api.calls != 1 {
		t.Errorf("API calls = %d, want 1", api.calls)
	}
}

func TestLights_SetRollbackOnFailure(t *testing.T) {
	ctx := context.Background()
	f := roomsFetcher(t, []Room{{ID: 1, Name: "Kitchen"}})
	api := &fakeLightAPI{err: errors.New("device unreachable")}
	lights := NewLights(api, f)

	err := lights.Set(ctx, 1, true)
	if err == nil {
		t.Fatal("Set() error = nil, want failure surfaced")
	}

	// The optimistic flip must have been rolled back.
	if f.Data()[0].Telemetry.LightOn {
		t.Error("room 1 light still on after failed command")
	}
}

func TestLights_Toggle(t *testing.T) {
	ctx := context.Background()
	f := roomsFetcher(t, []Room{
		{ID: 1, Name: "Kitchen", Telemetry: Telemetry{LightOn: true}},
	})
	api := &fakeLightAPI{}
	lights := NewLights(api, f)

	if err := lights.Toggle(ctx, 1); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if f.Data()[0].Telemetry.LightOn {
		t.Error("toggle of a lit room left the light on")
	}
}

func TestLights_ToggleUnknownRoom(t *testing.T) {
	ctx := context.Background()
	f := roomsFetcher(t, []Room{{ID: 1, Name: "Kitchen"}})
	api := &fakeLightAPI{}
	lights := NewLights(api, f)

	if err := lights.Toggle(ctx, 99); err == nil {
		t.Error("Toggle() of unknown room returned nil error")
	}
	if api.calls != 0 {
		t.Errorf("API called %d times for unknown room, want 0", api.calls)
	}
}
