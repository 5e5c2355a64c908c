package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret: "secret",
		Issuer: "storefront",
		TTL:    time.Hour,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testSessionConfig()
	now := time.Now().UTC()

	token, minted, err := MintSessionToken(cfg, now, "sess-123")
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}
	if claims.SessionID != "sess-123" {
		t.Fatalf("expected sid sess-123, got %s", claims.SessionID)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}
	if claims.ID == "" || claims.ID != minted.ID {
		t.Fatalf("jti mismatch: minted %q parsed %q", minted.ID, claims.ID)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(now) {
		t.Fatalf("expected expiry after issue time")
	}
}

func TestMintGeneratesSessionID(t *testing.T) {
	_, claims, err := MintSessionToken(testSessionConfig(), time.Now(), "  ")
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}
	if claims.SessionID == "" {
		t.Fatal("expected generated session id")
	}
}

func TestMintSessionTokenValidatesConfig(t *testing.T) {
	cases := map[string]config.SessionConfig{
		"secret": {Issuer: "storefront", TTL: time.Hour},
		"issuer": {Secret: "secret", TTL: time.Hour},
		"ttl":    {Secret: "secret", Issuer: "storefront"},
	}
	for name, cfg := range cases {
		if _, _, err := MintSessionToken(cfg, time.Now(), "sid"); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	cfg := testSessionConfig()
	token, _, err := MintSessionToken(cfg, time.Now().Add(-2*time.Hour), "sid")
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseSessionTokenRejectsWrongSecretAndIssuer(t *testing.T) {
	cfg := testSessionConfig()
	token, _, err := MintSessionToken(cfg, time.Now(), "sid")
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	wrongSecret := cfg
	wrongSecret.Secret = "other"
	if _, err := ParseSessionToken(wrongSecret, token); err == nil {
		t.Fatal("expected signature failure")
	}

	wrongIssuer := cfg
	wrongIssuer.Issuer = "elsewhere"
	if _, err := ParseSessionToken(wrongIssuer, token); err == nil {
		t.Fatal("expected issuer failure")
	}
}

func TestParseSessionTokenRejectsOtherAlgorithms(t *testing.T) {
	cfg := testSessionConfig()
	claims := SessionClaims{
		SessionID: "sid",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token); err == nil || !strings.Contains(err.Error(), "signing method") {
		t.Fatalf("expected signing method error, got %v", err)
	}
}

func TestParseSessionTokenRequiresSID(t *testing.T) {
	cfg := testSessionConfig()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token); err == nil {
		t.Fatal("expected missing sid to fail")
	}
}
