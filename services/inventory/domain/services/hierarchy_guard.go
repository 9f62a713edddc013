// Package services contains stateless domain services for the inventory
// bounded context. Domain services enforce business rules that operate
// purely on domain types and narrow read-only ports.
package services

import (
	"context"
	"fmt"

	domain "github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// AncestryReader is the narrow read port the guard needs: fetch a location
// by id (for parent-chain walking) and test existence.
type AncestryReader interface {
	GetByID(ctx context.Context, id string) (*models.Location, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// HierarchyGuard validates parent assignments before any write. It never
// mutates state; it only reads the current hierarchy.
type HierarchyGuard struct {
	locations AncestryReader
}

// NewHierarchyGuard returns a guard reading ancestry through the given port.
func NewHierarchyGuard(locations AncestryReader) *HierarchyGuard {
	return &HierarchyGuard{locations: locations}
}

// ValidateParentExists checks only that the proposed parent exists. This is
// the creation-time check: the child row does not exist yet, so no cycle is
// possible.
func (g *HierarchyGuard) ValidateParentExists(ctx context.Context, parentID string) error {
	exists, err := g.locations.Exists(ctx, parentID)
	if err != nil {
		return fmt.Errorf("check parent %q: %w", parentID, err)
	}
	if !exists {
		return fmt.Errorf("%w: %q", domain.ErrParentNotFound, parentID)
	}
	return nil
}

// ValidateNewParent decides whether assigning proposedParentID as childID's
// parent is legal:
//
//   - ErrParentNotFound if proposedParentID does not exist.
//   - ErrInvalidArgument if proposedParentID equals childID.
//   - ErrCycleDetected if walking the parent chain upward from
//     proposedParentID reaches childID.
//
// The walk keeps a visited set. Revisiting childID is the cycle the write
// would introduce; revisiting any *other* node means the stored data is
// already inconsistent, and the walk stops successfully rather than loop
// forever. Cost is O(depth) store round-trips.
func (g *HierarchyGuard) ValidateNewParent(ctx context.Context, childID, proposedParentID string) error {
	if childID == proposedParentID {
		return fmt.Errorf("%w: location %q cannot be its own parent", domain.ErrInvalidArgument, childID)
	}

	if err := g.ValidateParentExists(ctx, proposedParentID); err != nil {
		return err
	}

	visited := map[string]bool{childID: true}
	current := proposedParentID
	for {
		if current == childID {
			return fmt.Errorf("%w: %q is an ancestor of %q", domain.ErrCycleDetected, childID, proposedParentID)
		}
		if visited[current] {
			// Pre-existing inconsistency in stored data; terminate.
			return nil
		}
		visited[current] = true

		loc, err := g.locations.GetByID(ctx, current)
		if err != nil {
			return fmt.Errorf("walk parent chain at %q: %w", current, err)
		}
		parentID, ok := loc.Parent.ParentID()
		if !ok {
			return nil
		}
		current = parentID
	}
}
