package room

import "fmt"

// AlertKind classifies a derived alert.
type AlertKind string

const (
	AlertFire     AlertKind = "fire"
	AlertDoorOpen AlertKind = "door_open"
	AlertMotion   AlertKind = "motion"
)

// Alert is a condition worth surfacing, derived from room telemetry.
// There is no alerts endpoint at the boundary; alerts exist only
// client-side as a pure function of the room set.
type Alert struct {
	RoomID   int64     `json:"room_id"`
	RoomName string    `json:"room_name"`
	Kind     AlertKind `json:"kind"`
	Message  string    `json:"message"`
}

// DeriveAlerts computes the alert list for a set of rooms.
//
// Fire alerts come first regardless of room order; door and motion
// alerts follow in room order. The input is not modified.
func DeriveAlerts(rooms []Room) []Alert {
	var fires, rest []Alert

	for _, r := range rooms {
		if r.Telemetry.Fire {
			fires = append(fires, Alert{
				RoomID:   r.ID,
				RoomName: r.Name,
				Kind:     AlertFire,
				Message:  fmt.Sprintf("fire detected in %s", r.Name),
			})
		}
		if r.Telemetry.DoorOpen {
			rest = append(rest, Alert{
				RoomID:   r.ID,
				RoomName: r.Name,
				Kind:     AlertDoorOpen,
				Message:  fmt.Sprintf("door open in %s", r.Name),
			})
		}
		if r.Telemetry.Motion {
			rest = append(rest, Alert{
				RoomID:   r.ID,
				RoomName: r.Name,
				Kind:     AlertMotion,
				Message:  fmt.Sprintf("motion detected in %s", r.Name),
			})
		}
	}

	return append(fires, rest...)
}
