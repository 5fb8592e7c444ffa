package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	token, issued, err := GenerateSessionToken(42, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, issued.ID, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestSessionToken_UniqueIDs(t *testing.T) {
	_, a, err := GenerateSessionToken(1, time.Hour)
	require.NoError(t, err)
	_, b, err := GenerateSessionToken(1, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParseSessionToken_Expired(t *testing.T) {
	token, _, err := GenerateSessionToken(1, -time.Minute)
	require.NoError(t, err)
	_, err = ParseSessionToken(token)
	assert.Error(t, err)
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	claims := SessionClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("someone-else"))
	require.NoError(t, err)

	_, err = ParseSessionToken(forged)
	assert.Error(t, err)
}

func TestParseSessionToken_Garbage(t *testing.T) {
	_, err := ParseSessionToken("not.a.token")
	assert.Error(t, err)
	_, err = ParseSessionToken("")
	assert.Error(t, err)
}
