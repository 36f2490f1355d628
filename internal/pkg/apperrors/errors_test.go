package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExpiredIsInvalid(t *testing.T) {
	err := fmt.Errorf("verify: %w", ErrTokenExpired)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatal("expired token error should match ErrTokenInvalid")
	}
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatal("expired token error should match itself")
	}
}

func TestPublicMessage(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewConflictError("course code already exists"))
	if got := PublicMessage(wrapped, "fallback"); got != "course code already exists" {
		t.Fatalf("PublicMessage = %q", got)
	}
	if !errors.Is(wrapped, ErrResourceAlreadyExists) {
		t.Fatal("conflict error should unwrap to ErrResourceAlreadyExists")
	}
	if got := PublicMessage(errors.New("boom"), "fallback"); got != "fallback" {
		t.Fatalf("PublicMessage = %q, want fallback", got)
	}
}

func TestIsAny(t *testing.T) {
	err := NewValidationError("bad")
	if !Is(err, ErrResourceNotFound, ErrValidationFailed) {
		t.Fatal("Is should match the second candidate")
	}
	if Is(err, ErrResourceNotFound) {
		t.Fatal("Is matched an unrelated sentinel")
	}
}
