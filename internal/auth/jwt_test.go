package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-at-least-32-chars-long-for-security")

func TestJWTManager_GenerateAndValidate_Success(t *testing.T) {
	manager := NewJWTManager(testSecret, "extrato-test", 15*time.Minute)

	token, err := manager.GenerateAccessToken("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	id, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if id.Subject != "admin" {
		t.Errorf("expected subject 'admin', got %q", id.Subject)
	}
	if !id.IsAdmin() {
		t.Errorf("expected admin role, got %q", id.Role)
	}
	if time.Until(id.ExpiresAt) <= 0 || time.Until(id.ExpiresAt) > 15*time.Minute {
		t.Errorf("unexpected expiry %v", id.ExpiresAt)
	}
}

func TestJWTManager_ValidateAccessToken_Expired(t *testing.T) {
	manager := NewJWTManager(testSecret, "extrato-test", -1*time.Hour)

	token, err := manager.GenerateAccessToken("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestJWTManager_ValidateAccessToken_WrongSecret(t *testing.T) {
	issuer := NewJWTManager(testSecret, "extrato-test", time.Hour)
	other := NewJWTManager([]byte("another-secret-also-32-chars-long-ok!!"), "extrato-test", time.Hour)

	token, err := issuer.GenerateAccessToken("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatal("expected signature error, got nil")
	}
}

func TestJWTManager_ValidateAccessToken_WrongIssuer(t *testing.T) {
	a := NewJWTManager(testSecret, "issuer-a", time.Hour)
	b := NewJWTManager(testSecret, "issuer-b", time.Hour)

	token, err := a.GenerateAccessToken("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := b.ValidateAccessToken(token); err == nil {
		t.Fatal("expected issuer error, got nil")
	}
}

func TestJWTManager_ValidateAccessToken_Empty(t *testing.T) {
	manager := NewJWTManager(testSecret, "extrato-test", time.Hour)

	_, err := manager.ValidateAccessToken("")
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty token error, got %v", err)
	}
}

func TestJWTManager_ValidateAccessToken_RejectsNoneAlgorithm(t *testing.T) {
	manager := NewJWTManager(testSecret, "extrato-test", time.Hour)

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			Issuer:    "extrato-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: RoleAdmin,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Fatal("expected unsigned token to be rejected")
	}
}

func TestJWTManager_ValidateAccessToken_Garbage(t *testing.T) {
	manager := NewJWTManager(testSecret, "extrato-test", time.Hour)

	if _, err := manager.ValidateAccessToken("not.a.jwt"); err == nil {
		t.Fatal("expected parse error")
	}
}
