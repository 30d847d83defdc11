package home

// Capability represents a named action the UI may offer within a home.
type Capability string

// Capability constants.
const (
	CapViewRooms     Capability = "rooms:view"
	CapViewTelemetry Capability = "telemetry:view"
	CapOperateLights Capability = "lights:operate"
	CapManageRooms   Capability = "rooms:manage"
	CapManageDevices Capability = "devices:manage"
	CapManageMembers Capability = "members:manage"
	CapEditHome      Capability = "home:edit"
	CapDeleteHome    Capability = "home:delete"
)

// roleCapabilities maps each per-home role to its granted capabilities.
// This is the single source of truth for what the view layer is allowed
// to render and what actions it may offer.
var roleCapabilities = map[Role][]Capability{
	RoleGuest: {
		CapViewRooms,
		CapViewTelemetry,
	},
	RoleMember: {
		CapViewRooms,
		CapViewTelemetry,
		CapOperateLights,
	},
	RoleAdmin: {
		CapViewRooms,
		CapViewTelemetry,
		CapOperateLights,
		CapManageRooms,
		CapManageDevices,
		CapManageMembers,
		CapEditHome,
	},
	RoleOwner: {
		CapViewRooms,
		CapViewTelemetry,
		CapOperateLights,
		CapManageRooms,
		CapManageDevices,
		CapManageMembers,
		CapEditHome,
		CapDeleteHome,
	},
}

// HasCapability returns true if the given role grants the capability.
// Unknown roles grant nothing.
func HasCapability(role Role, cap Capability) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	for _, c := range caps {
		if c == cap {
			return true
		}
	}
	return false
}

// CapabilitiesForRole returns all capabilities granted to a role.
// Returns nil for unknown roles.
func CapabilitiesForRole(role Role) []Capability {
	caps := roleCapabilities[role]
	if caps == nil {
		return nil
	}
	result := make([]Capability, len(caps))
	copy(result, caps)
	return result
}
