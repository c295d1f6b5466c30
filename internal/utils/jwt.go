package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionSubject = "admin"

type sessionClaims struct {
	jwt.RegisteredClaims
}

// GenerateSessionToken creates the signed token carried by the admin
// session cookie.
func GenerateSessionToken(secret string, ttl time.Duration) (string, error) {
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionSubject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates an admin session token.
func ParseSessionToken(secret, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Subject != sessionSubject {
		return jwt.ErrTokenInvalidClaims
	}
	return nil
}
