package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/CamKhongFine/iot/internal/room"
)

// ListRooms fetches the rooms of one home, each with its latest
// telemetry snapshot and linked device.
func (c *Client) ListRooms(ctx context.Context, homeID int64) ([]room.Room, error) {
	var rooms []room.Room
	path := fmt.Sprintf("/rooms?home_id=%d", homeID)
	if err := c.do(ctx, http.MethodGet, path, nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// SetLight turns the light in a room on or off. The boundary relays the
// command to the room's device over the telemetry platform.
func (c *Client) SetLight(ctx context.Context, roomID int64, on bool) error {
	state := "off"
	if on {
		state = "on"
	}
	path := fmt.Sprintf("/rooms/%d/light/%s", roomID, state)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// TelemetryHistory fetches the recorded series for one metric of one
// room.
func (c *Client) TelemetryHistory(ctx context.Context, roomID int64, metric room.Metric) ([]room.TelemetryPoint, error) {
	if !room.IsValidMetric(metric) {
		return nil, fmt.Errorf("unsupported telemetry metric %q", metric)
	}

	var points []room.TelemetryPoint
	path := fmt.Sprintf("/rooms/%d/telemetry/history?metric=%s", roomID, url.QueryEscape(string(metric)))
	if err := c.do(ctx, http.MethodGet, path, nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}
