package token

import (
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager() *Manager {
	return NewManager(testSecret, 15*time.Minute, 24*time.Hour)
}

func TestIssuePairAndVerify(t *testing.T) {
	m := newTestManager()

	pair, err := m.IssuePair("7b0b44aa-9c5a-4c6e-8f1d-0e2a1b3c4d5e", "user@example.com")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatal("expected both tokens to be set")
	}
	if pair.Access == pair.Refresh {
		t.Fatal("access and refresh tokens must differ")
	}

	claims, err := m.VerifyAccess(pair.Access)
	if err != nil {
		t.Fatalf("VerifyAccess() error = %v", err)
	}
	if claims.UserID != "7b0b44aa-9c5a-4c6e-8f1d-0e2a1b3c4d5e" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.ID == "" {
		t.Error("expected jti to be set")
	}

	refreshClaims, err := m.VerifyRefresh(pair.Refresh)
	if err != nil {
		t.Fatalf("VerifyRefresh() error = %v", err)
	}
	if refreshClaims.TokenType != TypeRefresh {
		t.Errorf("TokenType = %q, want %q", refreshClaims.TokenType, TypeRefresh)
	}
}

func TestVerify_WrongTokenUse(t *testing.T) {
	m := newTestManager()

	pair, err := m.IssuePair("7b0b44aa-9c5a-4c6e-8f1d-0e2a1b3c4d5e", "user@example.com")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	if _, err := m.VerifyAccess(pair.Refresh); err != ErrWrongTokenUse {
		t.Errorf("VerifyAccess(refresh) error = %v, want ErrWrongTokenUse", err)
	}
	if _, err := m.VerifyRefresh(pair.Access); err != ErrWrongTokenUse {
		t.Errorf("VerifyRefresh(access) error = %v, want ErrWrongTokenUse", err)
	}
}

func TestVerify_InvalidToken(t *testing.T) {
	m := newTestManager()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: "not-a-token"},
		{name: "empty", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.VerifyAccess(tt.raw); err != ErrInvalidToken {
				t.Errorf("VerifyAccess(%q) error = %v, want ErrInvalidToken", tt.raw, err)
			}
		})
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager("ffffffffffffffffffffffffffffffff", 15*time.Minute, 24*time.Hour)

	pair, err := m.IssuePair("7b0b44aa-9c5a-4c6e-8f1d-0e2a1b3c4d5e", "user@example.com")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	if _, err := other.VerifyAccess(pair.Access); err != ErrInvalidToken {
		t.Errorf("VerifyAccess with wrong secret error = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	m := NewManager(testSecret, -1*time.Minute, 24*time.Hour)

	pair, err := m.IssuePair("7b0b44aa-9c5a-4c6e-8f1d-0e2a1b3c4d5e", "user@example.com")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	if _, err := m.VerifyAccess(pair.Access); err != ErrInvalidToken {
		t.Errorf("VerifyAccess(expired) error = %v, want ErrInvalidToken", err)
	}
}
