// Package token signs and verifies the bearer credentials used for
// authentication.
//
// Tokens are HS256 JWTs signed with the process-wide secret from
// config. Verification is local: signature plus expiry, no server-side
// session lookup.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity carried inside a bearer token: who the caller
// is and what role they hold. Role-based authorization downstream
// reads the role attached to the request context, never the raw token.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Sign issues a token for the given identity, valid for ttl.
func Sign(secret, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse verifies signature and expiry and returns the claims. Any
// failure (tampered, expired, wrong algorithm, garbage input) returns
// an error; callers treat every failure the same way: reject.
func Parse(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// Pin the algorithm: accepting whatever the token announces
		// would let an attacker downgrade to "none" or swap families.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	return claims, nil
}
