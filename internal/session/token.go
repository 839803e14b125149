package session

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/memories/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims carries the session user inside a signed token.
type Claims struct {
	jwt.RegisteredClaims
	User models.SessionUser `json:"user"`
}

// GenerateToken signs u with HS256. A zero ttl produces a token without expiry.
func GenerateToken(u models.SessionUser, secretKey []byte, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  u.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		User: u,
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// ParseToken verifies tokenString and returns its claims.
func ParseToken(tokenString string, secretKey []byte, now func() time.Time) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.User.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
