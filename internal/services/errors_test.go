package services_test

import (
	"errors"
	"strings"
	"testing"

	"pressline/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	err := services.Wrap(services.ErrInvalidTransition, "lifecycle", "advance", "missing assets", nil)
	if !errors.Is(err, services.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "lifecycle: advance: missing assets") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapChainsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := services.Wrap(services.ErrStore, "store", "insert pipeline", "", cause)
	if !errors.Is(err, services.ErrStore) {
		t.Fatalf("expected store marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestWrapNilMarkerDefaultsToStore(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrStore) {
		t.Fatalf("expected store marker fallback, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected generic detail, got %v", err)
	}
}
