package auth

import (
	"testing"
	"time"

	"github.com/sweetlabs/sweetshop-be/internal/models"
)

func TestGenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret", 30*time.Minute)

	token, err := tm.Generate(models.User{Username: "alice", IsAdmin: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tm.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("Expected subject alice, got %q", claims.Subject)
	}
	if !claims.IsAdmin {
		t.Error("Expected isAdmin claim to be true")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	// A negative TTL produces a token that is already expired
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Generate(models.User{Username: "alice"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := tm.Validate(token); err == nil {
		t.Error("Expected error validating an expired token, got nil")
	}
}

func TestValidateWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 30*time.Minute)
	other := NewTokenManager("another-secret", 30*time.Minute)

	token, err := tm.Generate(models.User{Username: "alice"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Error("Expected error validating with the wrong secret, got nil")
	}
}

func TestValidateGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 30*time.Minute)

	if _, err := tm.Validate("not.a.token"); err == nil {
		t.Error("Expected error validating a malformed token, got nil")
	}
}
