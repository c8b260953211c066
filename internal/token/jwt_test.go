package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/rostersync/internal/model"
)

func TestJWT_AdminToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	tok, err := j.GenerateAdminToken("ops@example.com")
	require.NoError(t, err)

	got, err := j.ParseAdminToken(tok)
	require.NoError(t, err)
	require.Equal(t, "ops@example.com", got)
}

func TestJWT_DefaultTTL(t *testing.T) {
	j := NewJWT("secret", 0)
	assert.Equal(t, DefaultTTL, j.ttl)
}

func TestJWT_GenerateErrors(t *testing.T) {
	_, err := NewJWT("secret", time.Hour).GenerateAdminToken("")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = NewJWT("", time.Hour).GenerateAdminToken("ops")
	assert.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, err := NewJWT("secret", time.Hour).GenerateAdminToken("ops")
	require.NoError(t, err)

	_, err = NewJWT("other", time.Hour).ParseAdminToken(tok)
	require.Error(t, err)
}

func TestJWT_ExpiryValidation(t *testing.T) {
	j := NewJWT("secret", time.Minute)
	issued := time.Now()
	j.now = func() time.Time { return issued }

	tok, err := j.GenerateAdminToken("ops")
	require.NoError(t, err)

	_, err = j.ParseAdminToken(tok)
	require.NoError(t, err)

	j.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = j.ParseAdminToken(tok)
	require.Error(t, err)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "ops",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: "refresh",
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour).ParseAdminToken(signed)
	require.Error(t, err)
}

func TestJWT_WrongSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, Subject: "ops"},
		TokenType:        typeAdmin,
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWT("secret", time.Hour).ParseAdminToken(signed)
	require.Error(t, err)
}
