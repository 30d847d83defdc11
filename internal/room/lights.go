package room

import (
	"context"
	"fmt"

	"github.com/CamKhongFine/iot/internal/fetcher"
)

// LightAPI is the slice of the boundary client light control needs.
type LightAPI interface {
	SetLight(ctx context.Context, roomID int64, on bool) error
}

// Logger defines the logging interface used by Lights.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Lights toggles room lights with optimistic local state.
//
// The displayed light state flips immediately, before the confirming
// request; if the request fails the inverse mutation rolls the state
// back and the error is returned to the caller. Either way the rooms
// fetcher's next applied fetch supersedes the local view with the
// server's.
type Lights struct {
	api    LightAPI
	rooms  *fetcher.Fetcher[[]Room]
	logger Logger
}

// NewLights creates a light controller over the rooms fetcher state.
func NewLights(api LightAPI, rooms *fetcher.Fetcher[[]Room]) *Lights {
	return &Lights{
		api:    api,
		rooms:  rooms,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the controller.
func (l *Lights) SetLogger(logger Logger) {
	l.logger = logger
}

// Set turns the light in roomID on or off.
func (l *Lights) Set(ctx context.Context, roomID int64, on bool) error {
	l.rooms.Mutate(withLightState(roomID, on))

	if err := l.api.SetLight(ctx, roomID, on); err != nil {
		// Rollback: the optimistic flip did not get confirmed.
		l.rooms.Mutate(withLightState(roomID, !on))
		l.logger.Warn("light command failed, rolled back",
			"room", roomID, "on", on, "error", err)
		return fmt.Errorf("setting light for room %d: %w", roomID, err)
	}

	l.logger.Debug("light set", "room", roomID, "on", on)
	return nil
}

// Toggle flips the light in roomID based on the currently displayed state.
func (l *Lights) Toggle(ctx context.Context, roomID int64) error {
	for _, r := range l.rooms.Data() {
		if r.ID == roomID {
			return l.Set(ctx, roomID, !r.Telemetry.LightOn)
		}
	}
	return fmt.Errorf("toggling light: room %d not in current home", roomID)
}

// withLightState returns a mutation setting one room's displayed light
// state. It copies the slice so concurrent readers of the previous
// snapshot are unaffected.
func withLightState(roomID int64, on bool) func([]Room) []Room {
	return func(rooms []Room) []Room {
		out := make([]Room, len(rooms))
		copy(out, rooms)
		for i := range out {
			if out[i].ID == roomID {
				out[i].Telemetry.LightOn = on
			}
		}
		return out
	}
}
