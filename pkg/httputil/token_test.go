package httputil

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBearerToken(t *testing.T) {
	t.Run("Reads the Authorization header", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/games/x/moves", nil)
		r.Header.Set("Authorization", "Bearer abc.def")

		token, err := GetBearerToken(r)

		require.NoError(t, err)
		assert.Equal(t, "abc.def", token)
	})

	t.Run("Rejects other schemes", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", nil)
		r.Header.Set("Authorization", "Basic Zm9vOmJhcg==")

		_, err := GetBearerToken(r)

		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("Falls back to the query", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/ws/games/x?seat=tkn", nil)

		token, err := GetBearerToken(r)

		require.NoError(t, err)
		assert.Equal(t, "tkn", token)
	})

	t.Run("Missing token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)

		_, err := GetBearerToken(r)

		assert.ErrorIs(t, err, ErrNoToken)
	})
}
