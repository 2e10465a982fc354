package token

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "01234567890123456789012345678901"

func TestJWTMakerRoundTrip(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	userID := uuid.New().String()

	tokenString, payload, err := maker.CreateToken(userID, "admin", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	require.Equal(t, userID, payload.Subject)
	require.Equal(t, "admin", payload.Role)

	verified, err := maker.VerifyToken(tokenString)
	require.NoError(t, err)
	require.Equal(t, userID, verified.Subject)
	require.Equal(t, "admin", verified.Role)
}

func TestJWTMakerRejectsShortKey(t *testing.T) {
	_, err := NewJWTMaker("too-short")
	require.Error(t, err)
}

func TestJWTMakerExpiredToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	tokenString, _, err := maker.CreateToken(uuid.New().String(), "staff", -time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(tokenString)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTMakerInvalidToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	_, err = maker.VerifyToken("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTMakerRejectsTamperedToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	tokenString, _, err := maker.CreateToken(uuid.New().String(), "staff", time.Minute)
	require.NoError(t, err)

	parts := strings.Split(tokenString, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA"

	_, err = maker.VerifyToken(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}
