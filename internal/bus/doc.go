// Package bus provides the change-notification channel between the home
// registry and home-scoped data fetchers.
//
// The registry is the only producer; fetchers subscribe independently
// and never reference the registry directly. This indirection is
// deliberate: any number of fetchers can mount and unmount without the
// registry knowing they exist.
//
// Delivery is synchronous and in-process. A Publish returns only after
// every handler subscribed at emission time has run, so a caller that
// switches home can rely on all mounted fetchers having been notified.
//
// Usage:
//
//	changes := bus.New[home.Change]()
//
//	id := changes.Subscribe(func(ev home.Change) {
//	    refetch(ev.HomeID)
//	})
//	defer changes.Unsubscribe(id)
//
//	changes.Publish(home.Change{HomeID: 2})
package bus
