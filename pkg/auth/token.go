package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// MintSessionToken issues a signed JWT carrying sessionID. An empty sessionID gets a fresh uuid.
func MintSessionToken(cfg config.SessionConfig, now time.Time, sessionID string) (string, *SessionClaims, error) {
	if cfg.Secret == "" {
		return "", nil, fmt.Errorf("session secret is required")
	}
	if cfg.Issuer == "" {
		return "", nil, fmt.Errorf("session issuer is required")
	}
	if cfg.TTL <= 0 {
		return "", nil, fmt.Errorf("session ttl must be positive")
	}

	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		sid = uuid.NewString()
	}

	claims := &SessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("signing jwt: %w", err)
	}
	return signed, claims, nil
}

// ParseSessionToken validates the JWT string and returns typed claims.
func ParseSessionToken(cfg config.SessionConfig, tokenString string) (*SessionClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(claims.SessionID) == "" {
		return nil, fmt.Errorf("session token missing sid")
	}

	return claims, nil
}
