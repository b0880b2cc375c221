package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func TestUploadTokenRoundTrip(t *testing.T) {
	token, err := GenerateUploadToken("shop-owner", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseUploadToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "shop-owner", claims.Subject)
	assert.Equal(t, UploadTokenIssuer, claims.Issuer)
}

func TestParseUploadToken_Rejects(t *testing.T) {
	expired, err := GenerateUploadToken("shop-owner", testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseUploadToken(expired, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	valid, err := GenerateUploadToken("shop-owner", testSecret, time.Hour)
	require.NoError(t, err)
	_, err = ParseUploadToken(valid, "another-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = GenerateUploadToken("", testSecret, time.Hour)
	assert.Error(t, err)
}
