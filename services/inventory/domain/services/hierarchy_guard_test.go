package services

import (
	"context"
	"errors"
	"testing"

	domain "github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// fakeAncestry is an in-memory AncestryReader over an id -> parent-id map.
// An empty parent string marks a root.
type fakeAncestry struct {
	parents map[string]string
	lookups int
}

func (f *fakeAncestry) GetByID(_ context.Context, id string) (*models.Location, error) {
	parent, ok := f.parents[id]
	if !ok {
		return nil, domain.ErrLocationNotFound
	}
	f.lookups++
	ref := models.Root()
	if parent != "" {
		ref = models.ChildOf(parent)
	}
	return &models.Location{ID: id, Name: id, Parent: ref}, nil
}

func (f *fakeAncestry) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.parents[id]
	return ok, nil
}

func TestHierarchyGuard_ValidateParentExists(t *testing.T) {
	guard := NewHierarchyGuard(&fakeAncestry{parents: map[string]string{"warehouse": ""}})

	if err := guard.ValidateParentExists(context.Background(), "warehouse"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := guard.ValidateParentExists(context.Background(), "missing")
	if !errors.Is(err, domain.ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
}

func TestHierarchyGuard_ValidateNewParent(t *testing.T) {
	ctx := context.Background()

	t.Run("self parent rejected without store access", func(t *testing.T) {
		fake := &fakeAncestry{parents: map[string]string{"a": ""}}
		guard := NewHierarchyGuard(fake)

		err := guard.ValidateNewParent(ctx, "a", "a")
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		if fake.lookups != 0 {
			t.Fatalf("self-parent check must not reach the store, got %d lookups", fake.lookups)
		}
	})

	t.Run("missing parent rejected", func(t *testing.T) {
		guard := NewHierarchyGuard(&fakeAncestry{parents: map[string]string{"a": ""}})

		err := guard.ValidateNewParent(ctx, "a", "missing")
		if !errors.Is(err, domain.ErrParentNotFound) {
			t.Fatalf("expected ErrParentNotFound, got %v", err)
		}
	})

	t.Run("valid reparent under sibling subtree", func(t *testing.T) {
		// a -> b, c root; moving c under b is legal.
		guard := NewHierarchyGuard(&fakeAncestry{parents: map[string]string{
			"a": "", "b": "a", "c": "",
		}})
		if err := guard.ValidateNewParent(ctx, "c", "b"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("direct cycle detected", func(t *testing.T) {
		// b's parent is a; making a's parent b loops.
		guard := NewHierarchyGuard(&fakeAncestry{parents: map[string]string{
			"a": "", "b": "a",
		}})
		err := guard.ValidateNewParent(ctx, "a", "b")
		if !errors.Is(err, domain.ErrCycleDetected) {
			t.Fatalf("expected ErrCycleDetected, got %v", err)
		}
	})

	t.Run("deep cycle detected", func(t *testing.T) {
		// Chain a -> b -> c; setting a's parent to c must fail.
		guard := NewHierarchyGuard(&fakeAncestry{parents: map[string]string{
			"a": "", "b": "a", "c": "b",
		}})
		err := guard.ValidateNewParent(ctx, "a", "c")
		if !errors.Is(err, domain.ErrCycleDetected) {
			t.Fatalf("expected ErrCycleDetected, got %v", err)
		}
	})

	t.Run("pre-existing cycle not involving child terminates", func(t *testing.T) {
		// Corrupt data: x and y are each other's parents. Validating a move
		// of an unrelated node must terminate without error rather than
		// loop forever.
		guard := NewHierarchyGuard(&fakeAncestry{parents: map[string]string{
			"a": "", "x": "y", "y": "x",
		}})
		if err := guard.ValidateNewParent(ctx, "a", "x"); err != nil {
			t.Fatalf("expected defensive success on inconsistent data, got %v", err)
		}
	})
}
