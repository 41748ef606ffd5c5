// Package store holds the client's mutable state: the authenticated
// session, the listing collection, the favorite set, and ephemeral view
// state, plus the pure projection that derives the visible listing list.
//
// Stores are plain injectable structs guarded by RWMutex, constructed by
// the app wiring and shared between the UI loop and background work. None
// of them are package singletons, so tests build isolated instances.
//
// Mutation methods never return errors for backend failures. Listing
// mutations degrade to a local-only fallback (offline tolerance), and the
// favorite toggle rolls back to the pre-toggle set when the backend call
// fails, the one compensating-action guarantee in the system.
package store
