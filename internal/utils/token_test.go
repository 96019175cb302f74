package utils

import (
	"testing"
	"time"

	"forkful/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testUser() *models.User {
	return &models.User{
		ID:      42,
		Name:    "Alice",
		Email:   "alice@example.com",
		Avatar:  "https://img.example.com/alice.png",
		IsAdmin: true,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestTokenRejectsMalformedInput(t *testing.T) {
	_, err := ParseToken("definitely.not.a-token", testSecret)
	assert.Error(t, err)
}

// A 30-day token is still good a day before expiry and dead a day after.
func TestTokenExpiryBoundary(t *testing.T) {
	token, err := GenerateToken(testUser(), testSecret, 30*24*time.Hour)
	require.NoError(t, err)

	at := func(offset time.Duration) jwt.ParserOption {
		return jwt.WithTimeFunc(func() time.Time { return time.Now().Add(offset) })
	}

	_, err = ParseToken(token, testSecret, at(29*24*time.Hour))
	assert.NoError(t, err)

	_, err = ParseToken(token, testSecret, at(31*24*time.Hour))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
