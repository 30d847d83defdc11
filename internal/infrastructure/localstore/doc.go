// Package localstore persists client-side state across restarts.
//
// The dashboard keeps three independent settings: the auth token, the
// serialised user record, and the selected-home identifier. Each key has
// exactly one writer: the session store owns the auth.* keys, the home
// registry owns home.selected. The store itself enforces nothing; the
// ownership convention keeps writers from racing each other.
//
// Data lives in a single-table SQLite database so the usual pragmas
// (WAL, busy timeout) and file permissions apply.
//
// Usage:
//
//	store, err := localstore.Open(ctx, cfg.Storage)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	if err := store.Set(ctx, "home.selected", "2"); err != nil {
//	    return err
//	}
//	v, ok, err := store.Get(ctx, "home.selected")
package localstore
