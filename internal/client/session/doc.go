// Package session persists the single credential token of the client.
//
// A Store holds one named entry: the raw token. Exactly one token is active
// per client instance; it outlives process restarts but is never synced
// anywhere else.
//
// Implementations:
//
//   - SQLiteStore: the "token" row of the local metadata table (default).
//   - FileStore:   a 0600 file written atomically.
//   - MemoryStore: process-local, for tests and throwaway sessions.
//
// Set("") behaves like Clear. Get returns "" when no token is stored.
package session
