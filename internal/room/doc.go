// Package room holds the home-scoped resources the dashboard renders:
// rooms with their telemetry snapshots and linked devices, telemetry
// history series, and alerts derived from sensor state.
//
// Rooms are fetched through a fetcher.Fetcher[[]Room] wired to the
// home-change bus, so a home switch always supersedes the displayed
// set. Alerts have no boundary endpoint; DeriveAlerts computes them
// from the room set as a pure function.
//
// Light control is optimistic: Lights flips the displayed state before
// the confirming request and rolls it back if the request fails.
package room
