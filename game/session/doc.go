// Package session provides session management for 2048 games.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session expiry and storage sync
//   - Persistence to JSON files or to SQLite
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Sessions themselves are service.Session values holding an engine and
// metadata like creation time and last access time.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters from crypto/rand, retried until unused.
// Lookups are case-insensitive. Caller-chosen IDs are limited to letters,
// digits, '-' and '_' so they are safe as file names.
//
// Persistence:
//
// FilePersistence writes one <id>.json per session. SQLitePersistence keeps
// one row per session in a sessions table. Both store the config ID and the
// engine's GameState snapshot, and rebuild the engine with SetState on load.
//
// Usage:
//
//	store, err := session.OpenSQLitePersistence("sessions.db", configMgr)
//	manager := session.NewManagerWithPersistence(store)
//	if err := manager.LoadPersistedSessions(); err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err := manager.Create("", config)
package session
