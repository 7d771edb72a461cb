package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	uid := uuid.New()

	access, err := svc.GenerateAccessToken(uid, "ana@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.UserID != uid || c.TokenType != TokenTypeAccess || svc.IsRefreshToken(c) {
		t.Fatalf("unexpected claims %+v", c)
	}
	if c.TokenID() == "" {
		t.Fatalf("expected a token id")
	}

	refresh, err := svc.GenerateRefreshToken(uid)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rc, err := svc.ValidateToken(refresh)
	if err != nil || !svc.IsRefreshToken(rc) {
		t.Fatalf("expected refresh claims, got %v %+v", err, rc)
	}
	if rc.TokenID() == c.TokenID() {
		t.Fatalf("token ids must be unique")
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("a", "r", time.Minute, time.Hour)
	past := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return past }

	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	svc.now = time.Now
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	a := NewHMACService("a", "r", time.Minute, time.Hour)
	b := NewHMACService("x", "y", time.Minute, time.Hour)

	tok, _ := a.GenerateAccessToken(uuid.New(), "")
	if _, err := b.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
