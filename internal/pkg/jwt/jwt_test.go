package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndVerify(t *testing.T) {
	m, err := NewManager(Config{
		Secret:   "test-secret",
		Issuer:   "fotolio",
		Audience: "fotolio-admin",
		TTL:      time.Hour,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, expiresAt, err := m.Generate(42, "admin@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if time.Until(expiresAt) > time.Hour || time.Until(expiresAt) < 59*time.Minute {
		t.Fatalf("unexpected expiry: %v", expiresAt)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if claims.AdminID != 42 || claims.Email != "admin@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatal("expected a token id")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	a, _ := NewManager(Config{Secret: "secret-a", Issuer: "fotolio", Audience: "fotolio-admin", TTL: time.Hour})
	b, _ := NewManager(Config{Secret: "secret-b", Issuer: "fotolio", Audience: "fotolio-admin", TTL: time.Hour})

	token, _, err := a.Generate(1, "admin@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := b.Verify(token); err == nil {
		t.Fatal("expected verification to fail with wrong secret")
	}
}

func TestManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
