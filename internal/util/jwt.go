package util

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the claims so a refresh token can never be used as
// an access token (and vice versa).
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// Claims is the JWT payload for both access and refresh tokens.
type Claims struct {
	UserID uint   `json:"user_id"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token of the given kind for userID with the given ttl.
func GenerateToken(secret, issuer, kind string, userID uint, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken parses and verifies a JWT of the expected kind, returning Claims.
func ParseToken(secret, kind, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Kind != kind {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
