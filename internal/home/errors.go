package home

import "errors"

// Domain errors for the home package.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrUnknownHome is returned when a switch targets a home that is
	// not in the loaded set. The registry state is left unchanged and
	// no notification is emitted.
	ErrUnknownHome = errors.New("home: not in loaded set")

	// ErrNotLoaded is returned when an operation needs the home set
	// before it has been loaded.
	ErrNotLoaded = errors.New("home: set not loaded")
)
