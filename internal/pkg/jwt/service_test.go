package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService(now time.Time) *HMACService {
	s := NewHMACService("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestAccessToken_RoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s := newTestService(now)
	id := uuid.New()

	tok, err := s.GenerateAccessToken(id, "a@b.com", "school")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c, err := s.ValidateAccessToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.UserID != id || c.Role != "school" || c.Email != "a@b.com" {
		t.Fatalf("unexpected claims: %+v", c)
	}
}

func TestRefreshToken_RejectedAsAccess(t *testing.T) {
	s := newTestService(time.Now())
	tok, err := s.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.ValidateAccessToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := s.ValidateRefreshToken(tok); err != nil {
		t.Fatalf("expected refresh token to validate, got %v", err)
	}
}

func TestAccessToken_Expired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	s := newTestService(issued)
	tok, err := s.GenerateAccessToken(uuid.New(), "", "student")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	s.now = time.Now
	if _, err := s.ValidateAccessToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_Garbage(t *testing.T) {
	s := newTestService(time.Now())
	if _, err := s.ValidateAccessToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
