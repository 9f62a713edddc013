package repositories

import (
	"context"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/search"
)

// QueryOpts contains pagination parameters for list and search queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// LocationRepository is the persistence interface for the Location
// aggregate. The domain layer owns this interface; infrastructure
// implements it.
type LocationRepository interface {
	Save(ctx context.Context, loc *models.Location) error
	GetByID(ctx context.Context, id string) (*models.Location, error)

	// GetAll returns every location; input to the tree builder.
	GetAll(ctx context.Context) ([]*models.Location, error)

	// GetChildren returns the direct children of the given location.
	GetChildren(ctx context.Context, parentID string) ([]*models.Location, error)

	// Update persists name/description/parent changes to an existing location.
	Update(ctx context.Context, loc *models.Location) error

	// Delete removes a location. The store's referential restrictions
	// reject the delete while children or items reference it.
	Delete(ctx context.Context, id string) error

	Exists(ctx context.Context, id string) (bool, error)

	// HasChildren reports whether any location names id as its parent.
	HasChildren(ctx context.Context, id string) (bool, error)

	// SearchRanked executes the ranked full-text query and returns one page
	// of matches plus the total match count ignoring pagination.
	SearchRanked(ctx context.Context, qs search.QuerySet, opts QueryOpts) ([]*models.Location, int, error)
}
