package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCookieTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	signed, err := SignCookieToken(secret, "opaque-token", time.Hour)
	require.NoError(t, err)

	token, err := ParseCookieToken(secret, signed)
	require.NoError(t, err)
	require.Equal(t, "opaque-token", token)
}

func TestCookieTokenRejectsWrongSecret(t *testing.T) {
	signed, err := SignCookieToken([]byte("secret-a"), "opaque-token", time.Hour)
	require.NoError(t, err)

	_, err = ParseCookieToken([]byte("secret-b"), signed)
	require.ErrorIs(t, err, ErrInvalidCookieToken)
}

func TestCookieTokenRejectsExpired(t *testing.T) {
	secret := []byte("test-secret")

	signed, err := SignCookieToken(secret, "opaque-token", -time.Minute)
	require.NoError(t, err)

	_, err = ParseCookieToken(secret, signed)
	require.ErrorIs(t, err, ErrInvalidCookieToken)
}

func TestCookieTokenRejectsGarbage(t *testing.T) {
	_, err := ParseCookieToken([]byte("test-secret"), "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidCookieToken)
}
