package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UploadTokenIssuer is the iss claim of tokens minted for the upload route.
const UploadTokenIssuer = "credit-tracking"

// GenerateUploadToken signs an HS256 token for subject, valid for ttl.
func GenerateUploadToken(subject string, secret string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    UploadTokenIssuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseUploadToken parses a token string, validates its HMAC signature and standard claims.
// Errors wrap the jwt sentinels, so callers can tell jwt.ErrTokenExpired apart.
func ParseUploadToken(tokenString string, secret string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
