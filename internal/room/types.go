package room

import "time"

// Room is one room record as returned by the boundary: the room itself,
// the latest telemetry snapshot, and the linked device (if any).
// Rooms are home-scoped; a fetched set always belongs to one home.
type Room struct {
	ID          int64      `json:"id"`
	HomeID      int64      `json:"home_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Telemetry   Telemetry  `json:"telemetry"`
	Device      *Device    `json:"device,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Telemetry is the latest sensor snapshot for a room. Pointer fields
// are absent when the room's device has never reported that metric.
type Telemetry struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Motion      bool     `json:"motion"`
	DoorOpen    bool     `json:"door_open"`
	Fire        bool     `json:"fire"`
	LightOn     bool     `json:"light_on"`
}

// Device links a room to the telemetry platform. PlatformID is the
// platform-side device UUID used for telemetry and control; the device
// stores no telemetry itself.
type Device struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PlatformID string `json:"device_id"`
	DeviceType string `json:"device_type"`
	IsActive   bool   `json:"is_active"`
	RoomID     int64  `json:"room_id"`
}

// Metric names a telemetry series with recorded history.
type Metric string

const (
	MetricTemperature Metric = "temperature"
	MetricHumidity    Metric = "humidity"
)

// IsValidMetric returns true for metrics the boundary records history for.
func IsValidMetric(m Metric) bool {
	return m == MetricTemperature || m == MetricHumidity
}

// TelemetryPoint is one sample in a telemetry history series.
type TelemetryPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}
