package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/search"
)

// ItemRepository is the persistence interface for the Item aggregate.
type ItemRepository interface {
	Save(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// GetByLocation returns every item placed in the given location.
	GetByLocation(ctx context.Context, locationID string) ([]*models.Item, error)

	// List returns a name-ordered page of all items plus the total count;
	// backs the blank-search-term fallback.
	List(ctx context.Context, opts QueryOpts) ([]*models.Item, int, error)

	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// MoveMany reassigns every given item to newLocationID and returns the
	// number of rows moved. The update is a single statement, so the batch
	// is atomic at the store level.
	MoveMany(ctx context.Context, ids []uuid.UUID, newLocationID string) (int64, error)

	// SearchRanked executes the ranked full-text query and returns one page
	// of matches plus the total match count ignoring pagination.
	SearchRanked(ctx context.Context, qs search.QuerySet, opts QueryOpts) ([]*models.Item, int, error)
}
