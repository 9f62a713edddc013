package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/stockroom/pkg/cache"
	domain "github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/stockroom/services/inventory/domain/services"
	"github.com/ghuser/stockroom/services/inventory/domain/search"
)

// Page is the pagination envelope every search-style read returns.
// TotalCount ignores Offset/Limit so callers can derive HasMore without
// re-fetching.
type Page[T any] struct {
	Results    []T
	TotalCount int
	Offset     int
	Limit      int
}

// HasMore reports whether rows beyond this page match.
func (p Page[T]) HasMore() bool {
	return p.Offset+p.Limit < p.TotalCount
}

// LocationService orchestrates the hierarchy guard, tree builder, and
// location repository into the operations exposed to callers. Reads are
// served from Redis cache when available.
type LocationService struct {
	repo  repositories.LocationRepository
	guard *domainsvcs.HierarchyGuard
	cache *pkgcache.LocationCache
}

// NewLocationService returns a LocationService wired with the given
// repository and cache.
func NewLocationService(repo repositories.LocationRepository, locationCache *pkgcache.LocationCache) *LocationService {
	return &LocationService{
		repo:  repo,
		guard: domainsvcs.NewHierarchyGuard(repo),
		cache: locationCache,
	}
}

// Create validates and persists a new location. Fails with
// ErrLocationExists when the id is taken; when a parent is supplied, the
// guard validates it before anything is written.
func (s *LocationService) Create(ctx context.Context, id, name, description string, parent models.ParentRef) (*models.Location, error) {
	loc, err := models.NewLocation(id, name, description, parent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	taken, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check location id: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: %q", domain.ErrLocationExists, id)
	}

	if parentID, ok := parent.ParentID(); ok {
		if parentID == id {
			return nil, fmt.Errorf("%w: location %q cannot be its own parent", domain.ErrInvalidArgument, id)
		}
		if err := s.guard.ValidateParentExists(ctx, parentID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, loc); err != nil {
		return nil, fmt.Errorf("save location: %w", err)
	}
	return loc, nil
}

// Get retrieves a location using a read-through cache:
//  1. Check Redis first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *LocationService) Get(ctx context.Context, id string) (*models.Location, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil {
			var parentID *string
			if cached.ParentID != "" {
				parentID = &cached.ParentID
			}
			return &models.Location{
				ID:          cached.ID,
				Name:        cached.Name,
				Description: cached.Description,
				Parent:      models.ParentFromNullable(parentID),
				CreatedAt:   cached.CreatedAt,
				UpdatedAt:   cached.UpdatedAt,
			}, nil
		} else if !errors.Is(err, redis.Nil) {
			// Cache error; fall through to Postgres.
			_ = err
		}
	}

	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func() {
			_ = s.cache.Set(context.Background(), toCachedLocation(loc))
		}()
	}
	return loc, nil
}

// Update persists name/description/parent changes. When the parent changes,
// self-parenting is rejected as a fast path and the guard re-validates the
// full assignment (existence + cycle walk) before the write.
func (s *LocationService) Update(ctx context.Context, id, name, description string, parent models.ParentRef) (*models.Location, error) {
	if err := models.ValidateLocationName(name); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if newParentID, ok := parent.ParentID(); ok {
		if newParentID == id {
			return nil, fmt.Errorf("%w: location %q cannot be its own parent", domain.ErrInvalidArgument, id)
		}
		currentParentID, hadParent := existing.Parent.ParentID()
		if !hadParent || currentParentID != newParentID {
			if err := s.guard.ValidateNewParent(ctx, id, newParentID); err != nil {
				return nil, err
			}
		}
	}

	existing.Name = name
	existing.Description = description
	existing.Parent = parent

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update location: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}
	return existing, nil
}

// Delete removes a location. The store's referential restrictions enforce
// "no children, no items"; the repository translates those rejections into
// ErrLocationHasChildren / ErrLocationHasItems.
func (s *LocationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}
	return nil
}

// GetTree fetches all locations once and materializes the ordered forest.
// The tree is rebuilt on every call; nothing is cached across requests.
func (s *LocationService) GetTree(ctx context.Context) ([]*models.LocationTreeNode, error) {
	locs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	return models.BuildLocationTree(locs), nil
}

// Search runs the ranked full-text search over locations. A blank term is
// rejected with ErrInvalidArgument — unlike item search, location search
// has no enumeration fallback.
func (s *LocationService) Search(ctx context.Context, term string, offset, limit int) (Page[*models.Location], error) {
	if err := search.ValidatePage(offset, limit); err != nil {
		return Page[*models.Location]{}, err
	}

	qs, ok := search.BuildQuerySet(term)
	if !ok {
		return Page[*models.Location]{}, fmt.Errorf("%w: search term must not be blank", domain.ErrInvalidArgument)
	}

	results, total, err := s.repo.SearchRanked(ctx, qs, repositories.QueryOpts{Limit: limit, Offset: offset})
	if err != nil {
		return Page[*models.Location]{}, fmt.Errorf("search locations: %w", err)
	}
	return Page[*models.Location]{Results: results, TotalCount: total, Offset: offset, Limit: limit}, nil
}

func toCachedLocation(loc *models.Location) *pkgcache.CachedLocation {
	parentID, _ := loc.Parent.ParentID()
	return &pkgcache.CachedLocation{
		ID:          loc.ID,
		Name:        loc.Name,
		Description: loc.Description,
		ParentID:    parentID,
		CreatedAt:   loc.CreatedAt,
		UpdatedAt:   loc.UpdatedAt,
	}
}
