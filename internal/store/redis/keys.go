package redis

import "fmt"

const (
	// KeyPrefixSession is the prefix for session header keys
	KeyPrefixSession = "lawdesk:session:"
	// KeyPrefixSaved is the prefix for a session's saved marks
	KeyPrefixSaved = "lawdesk:saved:"
	// KeyPrefixDocuments is the prefix for a session's generated documents
	KeyPrefixDocuments = "lawdesk:documents:"
	// KeyAllSessions is the key for the set of all session IDs
	KeyAllSessions = "lawdesk:sessions:all"
)

// SessionKey returns the Redis key for a session header
func SessionKey(id string) string {
	return KeyPrefixSession + id
}

// SavedKey returns the Redis key for a session's saved marks
func SavedKey(sessionID string) string {
	return KeyPrefixSaved + sessionID
}

// DocumentsKey returns the Redis key for a session's documents
func DocumentsKey(sessionID string) string {
	return KeyPrefixDocuments + sessionID
}

// AllSessionsKey returns the key for the set of all session IDs
func AllSessionsKey() string {
	return KeyAllSessions
}

// ExtractSessionID extracts the session ID from a session header key
func ExtractSessionID(key string) (string, error) {
	if len(key) <= len(KeyPrefixSession) || key[:len(KeyPrefixSession)] != KeyPrefixSession {
		return "", fmt.Errorf("invalid session key: %s", key)
	}
	return key[len(KeyPrefixSession):], nil
}
