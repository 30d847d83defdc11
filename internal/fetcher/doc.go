// Package fetcher implements the subscription contract every
// home-scoped resource follows.
//
// A Fetcher[T] owns one resource (rooms, alerts, ...) whose contents
// are implicitly scoped to the current home. It guarantees the resource
// never shows another home's data after a switch:
//
//   - fetches trigger on Start, on every home-change notification from
//     the bus, and on explicit Refetch;
//   - with no home selected it yields the configured default and never
//     issues a request;
//   - a failed fetch is contained: previous data stays displayed, the
//     error is recorded, loading clears;
//   - completed fetches are applied only if they are the most recently
//     initiated one and their home is still current (stale-response
//     suppression: the substitute for request cancellation).
//
// Fetchers are wired to the home registry only through the bus; neither
// side references the other.
//
// Usage:
//
//	rooms := fetcher.New(fetcher.Config[[]room.Room]{
//	    Name:        "rooms",
//	    Fetch:       client.ListRooms,
//	    Default:     nil,
//	    CurrentHome: registry.CurrentID,
//	    Changes:     changes,
//	})
//	rooms.Start(ctx)
//	defer rooms.Stop()
package fetcher
