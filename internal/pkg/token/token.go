package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Roles carried in session tokens
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Claims represents the session token payload
type Claims struct {
	Role   string `json:"role"`
	Status string `json:"status,omitempty"` // account status snapshot at issue time, may be stale
	jwt.RegisteredClaims
}

// Issue creates a signed session token for the given subject.
// The expiry is derived from ttl; a new token is issued on every login.
func Issue(subject, role, status, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:   role,
		Status: status,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "gensuite-api",
			Subject:   subject,
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify validates a session token and returns its claims.
// Returns ErrTokenExpired when past expiry, ErrTokenInvalid for a bad
// signature or malformed structure. The two are never conflated.
func Verify(tokenString, secret string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}
