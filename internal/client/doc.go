// Package client is the typed HTTP client for the smart-home REST
// boundary.
//
// The boundary is a thin proxy in front of the telemetry platform and
// the account database; this package treats it as opaque. Endpoints:
//
//	POST /auth/login                          form-encoded password grant
//	POST /auth/register                       JSON account creation
//	GET  /auth/me                             current user
//	GET  /homes                               homes with per-home role
//	GET  /rooms?home_id=N                     rooms + telemetry + device
//	POST /rooms/{id}/light/on|off             device control
//	GET  /rooms/{id}/telemetry/history        metric series
//
// Every authenticated request carries the session's bearer token. The
// client performs exactly one attempt per call: no retries, no token
// refresh. Non-2xx responses become *APIError with the server's detail
// message, so callers can distinguish a rejected credential from an
// unreachable boundary via the status code.
package client
