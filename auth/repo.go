package auth

// Repo defines the interface for durable session storage.
// The Store owns the in-memory map; the repo only mirrors mutations so
// sessions survive process restarts.
type Repo interface {
	// Load returns all persisted sessions. Missing or corrupt storage
	// yields an empty map, never a startup failure.
	Load() (map[string]Session, error)

	// Put creates or replaces the session for a user
	Put(userID string, session Session) error

	// Delete removes the session for a user, if present
	Delete(userID string) error
}
