// Package home manages the set of homes visible to a session and the
// single "current home" selection everything else is scoped to.
//
// # Architecture
//
// The Registry fetches the home list from the boundary, repairs the
// selection against it (persisted choice first, then first-in-list),
// and broadcasts selection changes on a bus.Bus[Change]. Data fetchers
// subscribe to that bus; the registry never calls them directly, which
// keeps producers and consumers decoupled.
//
//	Registry ──publish──▶ bus.Bus[Change] ──deliver──▶ fetchers
//
// # State machine
//
//	Unloaded → Loading → {Loaded-Empty, Loaded-WithSelection}
//
// Loaded-WithSelection self-transitions on SwitchHome; any loaded state
// returns to Loading via Refresh. The registry lives for the session's
// duration.
//
// The package also defines the per-home Role and its capability map,
// which the view layer consults to gate navigation and actions.
package home
