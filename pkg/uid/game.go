package uid

import "github.com/google/uuid"

// GenerateGameID returns a random UUID used as the public match identifier
func GenerateGameID() string {
	return uuid.NewString()
}

// IsGameID reports whether s has the shape of an ID returned by GenerateGameID
func IsGameID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
