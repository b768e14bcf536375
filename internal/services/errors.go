package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks lookups for releases that do not exist for the owner.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks duplicate sync attempts. Informational: callers may
	// treat it as success-equivalent.
	ErrConflict = errors.New("conflict")
	// ErrInvalidTransition marks lifecycle changes not reachable from the
	// current status, or refused by a guard condition.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrStaleState marks a conditional write that lost a race; callers
	// should re-read and may retry once.
	ErrStaleState = errors.New("stale state")
	// ErrStore marks underlying persistence failures, propagated unchanged.
	ErrStore = errors.New("store failure")
	// ErrValidation marks rejected caller input.
	ErrValidation = errors.New("validation error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification via errors.Is. The
// marker should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrStore
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
