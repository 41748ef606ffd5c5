// Package app is the composition root for the Roost TUI.
//
// Run wires the pieces together in order: configuration, file logging, the
// local cache, the broker client (with any persisted session cookies
// restored), the listing/favorite/session/view stores, and the auth flow.
// It hydrates session and favorites from the cache, performs the initial
// listing fetch, starts the background refresh poller and then hands the
// terminal to the UI until the context is cancelled.
//
// Startup errors (unreadable config, cache open failure) are fatal and
// returned from Run. Everything after startup degrades instead: fetch and
// sync failures are recorded on the stores and retried by the poller with
// exponential backoff, so the app keeps working offline against seeded and
// cached data.
package app
