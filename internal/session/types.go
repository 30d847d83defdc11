package session

// User is the authenticated identity attached to a session.
//
// It normally comes from the boundary's /auth/me record. When that
// fetch fails right after login, a minimal record is synthesised from
// the login email instead (ID zero, username = local part of the email).
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	IsActive bool   `json:"is_active"`
}

// Registration is the payload for creating a new account.
type Registration struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}
