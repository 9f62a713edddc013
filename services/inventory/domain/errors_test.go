package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_NonNil(t *testing.T) {
	sentinels := []error{
		ErrLocationNotFound,
		ErrLocationExists,
		ErrParentNotFound,
		ErrCycleDetected,
		ErrLocationHasChildren,
		ErrLocationHasItems,
		ErrItemNotFound,
		ErrInvalidArgument,
	}
	for _, err := range sentinels {
		if err == nil {
			t.Fatal("sentinel error must not be nil")
		}
	}
}

func TestSentinelErrors_Messages(t *testing.T) {
	if ErrLocationHasChildren.Error() != "location has child locations" {
		t.Fatalf("unexpected message: %q", ErrLocationHasChildren.Error())
	}
	if ErrLocationHasItems.Error() != "location still contains items" {
		t.Fatalf("unexpected message: %q", ErrLocationHasItems.Error())
	}
	if ErrCycleDetected.Error() != "location hierarchy cycle detected" {
		t.Fatalf("unexpected message: %q", ErrCycleDetected.Error())
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("delete location: %w", ErrLocationHasItems)
	if !errors.Is(wrapped, ErrLocationHasItems) {
		t.Fatal("errors.Is must match wrapped ErrLocationHasItems")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrInvalidArgument, errors.New("limit out of range"))
	if !errors.Is(wrapped2, ErrInvalidArgument) {
		t.Fatal("errors.Is must match double-wrapped ErrInvalidArgument")
	}
}
