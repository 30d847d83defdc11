// Package session owns the authentication lifecycle for the dashboard.
//
// The Store is the root of trust for all protected operations: it holds
// the bearer token and the authenticated user, exposes login, register
// and logout, and restores a previous session from persisted storage at
// startup.
//
// # Invariants
//
//   - Token and user are always set and cleared together. A login
//     failure never leaves a partially-set token behind.
//   - Persisted state (auth.token, auth.user) is written only by this
//     package.
//   - Corrupt cached state self-heals: an unparseable user record wipes
//     both keys rather than producing a half-trusted session.
//
// # Degraded login
//
// When the credential exchange succeeds but the follow-up profile fetch
// fails, the login still succeeds with a user record synthesised from
// the email address. The boundary's /auth/me can be retried later; the
// user is not bounced back to the login form for a transient profile
// error.
package session
