package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	"github.com/ghuser/stockroom/services/inventory/domain/search"
)

// ItemService orchestrates item placement, movement, and search. Items may
// only live in leaf locations: a location with child locations cannot
// directly hold items, enforced here at write time.
type ItemService struct {
	items     repositories.ItemRepository
	locations repositories.LocationRepository
}

// NewItemService returns an ItemService wired with the given repositories.
func NewItemService(items repositories.ItemRepository, locations repositories.LocationRepository) *ItemService {
	return &ItemService{items: items, locations: locations}
}

// Create validates and persists a new item after verifying the target
// location exists and is a leaf.
func (s *ItemService) Create(ctx context.Context, name, description, locationID string, properties map[string]string) (*models.Item, error) {
	item, err := models.NewItem(name, description, locationID, properties)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	if err := s.requireLeafLocation(ctx, locationID); err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

// Get retrieves an item by id.
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.items.GetByID(ctx, id)
}

// GetByLocation returns every item in the given location.
// Fails with ErrLocationNotFound when the location does not exist.
func (s *ItemService) GetByLocation(ctx context.Context, locationID string) ([]*models.Item, error) {
	exists, err := s.locations.Exists(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("check location: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %q", domain.ErrLocationNotFound, locationID)
	}
	return s.items.GetByLocation(ctx, locationID)
}

// Update persists name, description, and properties changes. Placement is
// immutable here; use Move to change an item's location.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, name, description string, properties map[string]string) (*models.Item, error) {
	if err := models.ValidateItemName(name); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Name = name
	item.Description = description
	if properties == nil {
		properties = map[string]string{}
	}
	item.Properties = properties

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// Delete removes an item by id. Returns ErrItemNotFound if absent.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.items.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return domain.ErrItemNotFound
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Move reassigns a batch of items to a new leaf location. The target must
// exist and have zero children, and every item id must exist before any
// item is moved (all-or-nothing precondition). Returns the moved count.
func (s *ItemService) Move(ctx context.Context, ids []uuid.UUID, newLocationID string) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no item ids to move", domain.ErrInvalidArgument)
	}

	if err := s.requireLeafLocation(ctx, newLocationID); err != nil {
		return 0, err
	}

	for _, id := range ids {
		exists, err := s.items.Exists(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("check item %s: %w", id, err)
		}
		if !exists {
			return 0, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
		}
	}

	moved, err := s.items.MoveMany(ctx, ids, newLocationID)
	if err != nil {
		return 0, fmt.Errorf("move items: %w", err)
	}
	return moved, nil
}

// Search runs the ranked full-text search over items. A blank or
// whitespace-only term bypasses ranking entirely and degrades to plain
// name-ordered enumeration of all items with the same pagination envelope.
func (s *ItemService) Search(ctx context.Context, term string, offset, limit int) (Page[*models.Item], error) {
	if err := search.ValidatePage(offset, limit); err != nil {
		return Page[*models.Item]{}, err
	}

	opts := repositories.QueryOpts{Limit: limit, Offset: offset}

	qs, ok := search.BuildQuerySet(term)
	if !ok {
		results, total, err := s.items.List(ctx, opts)
		if err != nil {
			return Page[*models.Item]{}, fmt.Errorf("list items: %w", err)
		}
		return Page[*models.Item]{Results: results, TotalCount: total, Offset: offset, Limit: limit}, nil
	}

	results, total, err := s.items.SearchRanked(ctx, qs, opts)
	if err != nil {
		return Page[*models.Item]{}, fmt.Errorf("search items: %w", err)
	}
	return Page[*models.Item]{Results: results, TotalCount: total, Offset: offset, Limit: limit}, nil
}

// requireLeafLocation verifies the target location exists and currently has
// zero children. The two failures are distinct: a missing location is
// ErrLocationNotFound, a non-leaf target is ErrLocationHasChildren.
func (s *ItemService) requireLeafLocation(ctx context.Context, locationID string) error {
	exists, err := s.locations.Exists(ctx, locationID)
	if err != nil {
		return fmt.Errorf("check location: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %q", domain.ErrLocationNotFound, locationID)
	}

	hasChildren, err := s.locations.HasChildren(ctx, locationID)
	if err != nil {
		return fmt.Errorf("check location children: %w", err)
	}
	if hasChildren {
		return fmt.Errorf("%w: %q cannot hold items", domain.ErrLocationHasChildren, locationID)
	}
	return nil
}
