package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateTokenID generates a cryptographically secure random token ID
func GenerateTokenID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
