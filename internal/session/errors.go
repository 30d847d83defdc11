package session

import "errors"

// Domain errors for the session package.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrAuthentication is returned when the credential exchange is
	// rejected or the boundary is unreachable. It is never retried
	// automatically; a failed login leaves no partial token behind.
	ErrAuthentication = errors.New("session: authentication failed")

	// ErrRegistration is returned when account creation fails (for
	// example a duplicate email). It wraps the server-supplied detail
	// message when the boundary provides one.
	ErrRegistration = errors.New("session: registration failed")
)
