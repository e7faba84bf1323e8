package auth

import (
	"testing"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndParseToken(t *testing.T) {
	user := &models.User{ID: 7, Username: "caja", Name: "Caja Principal"}

	token, err := GenerateToken(secret, time.Hour, user)
	require.NoError(t, err)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "caja", claims.Username)
	assert.Equal(t, "Caja Principal", claims.Name)
}

func TestParseToken(t *testing.T) {
	user := &models.User{ID: 1, Username: "admin"}

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken(secret, time.Hour, user)
		require.NoError(t, err)
		_, err = ParseToken("another-secret-another-secret-xx", token)
		assert.Error(t, err)
	})

	t.Run("non-positive ttl falls back to a day", func(t *testing.T) {
		token, err := GenerateToken(secret, -time.Minute, user)
		require.NoError(t, err)
		claims, err := ParseToken(secret, token)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken(secret, "not-a-jwt")
		assert.Error(t, err)
	})
}
