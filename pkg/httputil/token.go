package httputil

import (
	"errors"
	"net/http"
	"strings"
)

const SeatQueryParam = "seat"

var ErrNoToken = errors.New("no seat token found in header or query")

// GetBearerToken extracts the seat token from the Authorization header,
// falling back to the ?seat= query parameter (browsers cannot set headers on a
// WebSocket upgrade)
func GetBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Support "Bearer <token>" format
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		token = strings.TrimSpace(token)
		if found && token != "" {
			return token, nil
		}
		return "", ErrNoToken
	}

	if token := r.URL.Query().Get(SeatQueryParam); token != "" {
		return token, nil
	}

	return "", ErrNoToken
}
