package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims identifies an anonymous browsing session. The sid claim keys the cart slot.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
