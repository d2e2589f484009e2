package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrIndexBackend, cause, "failed to upsert points")

	if !errors.Is(err, ErrIndexBackend) {
		t.Fatalf("expected ErrIndexBackend in chain, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected original cause in chain, got %v", err)
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(ErrGeneration, nil, "empty reply")
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestModelTimeoutIsGeneration(t *testing.T) {
	err := fmt.Errorf("complete: %w", ErrModelTimeout)

	if !errors.Is(err, ErrModelTimeout) {
		t.Fatalf("expected ErrModelTimeout in chain")
	}
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("timeout must also satisfy ErrGeneration")
	}
	if errors.Is(err, ErrParse) {
		t.Fatalf("timeout must not match unrelated kinds")
	}
}

func TestNotFoundf(t *testing.T) {
	err := NotFoundf("project %s", "p1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := err.Error(); got != "project p1: not found" {
		t.Fatalf("unexpected message: %q", got)
	}
}
