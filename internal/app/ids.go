package app

import "github.com/google/uuid"

// newID returns a random UUIDv4 session id.
func newID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like a session id issued by newID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
