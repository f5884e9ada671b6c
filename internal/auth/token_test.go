package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.Issue("user-123", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %v", exp)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("subject = %q, want user-123", claims.Subject)
	}
	if claims.IsAdmin {
		t.Error("expected is_admin false")
	}
}

func TestTokenCarriesAdminCapability(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, _, err := tm.Issue("admin", true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "admin" || !claims.IsAdmin {
		t.Errorf("claims = {%q, %v}, want {admin, true}", claims.Subject, claims.IsAdmin)
	}
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	tm.ttl = -time.Minute

	token, _, err := tm.Issue("user-123", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tm.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("verify error = %v, want ErrTokenExpired", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.Issue("user-123", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalidSignature) {
		t.Errorf("verify error = %v, want ErrTokenInvalidSignature", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.Verify(tok); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Verify(%q) error = %v, want ErrTokenMalformed", tok, err)
		}
	}
}
