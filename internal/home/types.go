package home

import "time"

// Role represents the requesting user's permission level within a home.
// Roles are scoped per home: the same user can be owner of one home and
// guest in another.
type Role string

const (
	// RoleOwner created the home. Full control, including deleting the
	// home and managing other members' roles.
	RoleOwner Role = "owner"

	// RoleAdmin manages rooms, devices and members, but cannot delete
	// the home or demote the owner.
	RoleAdmin Role = "admin"

	// RoleMember is a household member: views everything, operates
	// devices, no structural changes.
	RoleMember Role = "member"

	// RoleGuest has read-only visibility of rooms and telemetry.
	RoleGuest Role = "guest"
)

// ValidRoles is the set of roles the boundary may return.
var ValidRoles = []Role{RoleOwner, RoleAdmin, RoleMember, RoleGuest}

// IsValidRole returns true if the role is one of the known roles.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// HomeType is the category tag attached to a home.
type HomeType string

const (
	TypeHouse      HomeType = "house"
	TypeApartment  HomeType = "apartment"
	TypeVacation   HomeType = "vacation"
	TypeCommercial HomeType = "commercial"
	TypeOther      HomeType = "other"
)

// Home represents a top-level tenant scope owned or shared by a user.
// It contains rooms and devices; Role is the requesting user's role in
// this particular home.
type Home struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Address     string     `json:"address,omitempty"`
	OwnerID     int64      `json:"owner_id"`
	Role        Role       `json:"role"`
	Type        HomeType   `json:"type"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Change is the payload broadcast when the current home changes.
// HomeID is zero when the selection has been cleared (empty home set).
type Change struct {
	HomeID int64
}
