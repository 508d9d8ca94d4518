package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"recipe-finder/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func loadTestConfig(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "app:\n  name: utils-test\njwt:\n  secret: unit-secret\n  expire_hours: 2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err != nil {
		t.Fatal(err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal plaintext")
	}
	if !VerifyPassword("secret123", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	loadTestConfig(t)

	token, claims, err := GenerateToken("user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if claims.ID == "" {
		t.Error("token id should be set")
	}
	if ttl := claims.RemainingTTL(); ttl <= time.Hour || ttl > 2*time.Hour {
		t.Errorf("ttl = %v", ttl)
	}

	parsed, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.UserID != "user-1" || parsed.ID != claims.ID {
		t.Errorf("claims = %+v", parsed)
	}
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	loadTestConfig(t)

	if _, err := ParseToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage err = %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, _ := expired.SignedString([]byte("unit-secret"))
	if _, err := ParseToken(signed); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expired err = %v", err)
	}

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "user-1"})
	signed, _ = other.SignedString([]byte("another-secret"))
	if _, err := ParseToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret err = %v", err)
	}
}
