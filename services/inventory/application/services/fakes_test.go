package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	domain "github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	"github.com/ghuser/stockroom/services/inventory/domain/search"
)

// fakeLocationRepo is an in-memory LocationRepository for service tests.
// occupied marks locations currently holding items, mirroring the store's
// item foreign key restriction on delete.
type fakeLocationRepo struct {
	locations   map[string]*models.Location
	occupied    map[string]bool
	searchCalls int
}

func newFakeLocationRepo(locs ...*models.Location) *fakeLocationRepo {
	f := &fakeLocationRepo{
		locations: map[string]*models.Location{},
		occupied:  map[string]bool{},
	}
	for _, loc := range locs {
		cp := *loc
		f.locations[loc.ID] = &cp
	}
	return f
}

func (f *fakeLocationRepo) Save(_ context.Context, loc *models.Location) error {
	if _, ok := f.locations[loc.ID]; ok {
		return domain.ErrLocationExists
	}
	cp := *loc
	f.locations[loc.ID] = &cp
	return nil
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id string) (*models.Location, error) {
	loc, ok := f.locations[id]
	if !ok {
		return nil, domain.ErrLocationNotFound
	}
	cp := *loc
	return &cp, nil
}

func (f *fakeLocationRepo) GetAll(_ context.Context) ([]*models.Location, error) {
	var out []*models.Location
	for _, loc := range f.locations {
		cp := *loc
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeLocationRepo) GetChildren(_ context.Context, parentID string) ([]*models.Location, error) {
	var out []*models.Location
	for _, loc := range f.locations {
		if pid, ok := loc.Parent.ParentID(); ok && pid == parentID {
			cp := *loc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) Update(_ context.Context, loc *models.Location) error {
	if _, ok := f.locations[loc.ID]; !ok {
		return domain.ErrLocationNotFound
	}
	cp := *loc
	f.locations[loc.ID] = &cp
	return nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.locations[id]; !ok {
		return domain.ErrLocationNotFound
	}
	for _, loc := range f.locations {
		if pid, ok := loc.Parent.ParentID(); ok && pid == id {
			return domain.ErrLocationHasChildren
		}
	}
	if f.occupied[id] {
		return domain.ErrLocationHasItems
	}
	delete(f.locations, id)
	return nil
}

func (f *fakeLocationRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.locations[id]
	return ok, nil
}

func (f *fakeLocationRepo) HasChildren(_ context.Context, id string) (bool, error) {
	for _, loc := range f.locations {
		if pid, ok := loc.Parent.ParentID(); ok && pid == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLocationRepo) SearchRanked(_ context.Context, qs search.QuerySet, opts repositories.QueryOpts) ([]*models.Location, int, error) {
	f.searchCalls++
	var matches []*models.Location
	for _, loc := range f.locations {
		if fakeMatches(qs, loc.Name+" "+loc.Description) {
			cp := *loc
			matches = append(matches, &cp)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Name != matches[j].Name {
			return matches[i].Name < matches[j].Name
		}
		return matches[i].ID < matches[j].ID
	})
	total := len(matches)
	return pageOf(matches, opts), total, nil
}

// fakeItemRepo is an in-memory ItemRepository for service tests.
type fakeItemRepo struct {
	items       map[uuid.UUID]*models.Item
	listCalls   int
	searchCalls int
	moveCalls   int
}

func newFakeItemRepo(items ...*models.Item) *fakeItemRepo {
	f := &fakeItemRepo{items: map[uuid.UUID]*models.Item{}}
	for _, item := range items {
		cp := *item
		f.items[item.ID] = &cp
	}
	return f
}

func (f *fakeItemRepo) Save(_ context.Context, item *models.Item) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeItemRepo) GetByLocation(_ context.Context, locationID string) ([]*models.Item, error) {
	var out []*models.Item
	for _, item := range f.items {
		if item.LocationID == locationID {
			cp := *item
			out = append(out, &cp)
		}
	}
	sortItems(out)
	return out, nil
}

func (f *fakeItemRepo) List(_ context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	f.listCalls++
	all := f.sorted()
	return pageOf(all, opts), len(all), nil
}

func (f *fakeItemRepo) Update(_ context.Context, item *models.Item) error {
	if _, ok := f.items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.items[id]
	return ok, nil
}

func (f *fakeItemRepo) MoveMany(_ context.Context, ids []uuid.UUID, newLocationID string) (int64, error) {
	f.moveCalls++
	var moved int64
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			item.LocationID = newLocationID
			moved++
		}
	}
	return moved, nil
}

func (f *fakeItemRepo) SearchRanked(_ context.Context, qs search.QuerySet, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	f.searchCalls++
	var matches []*models.Item
	for _, item := range f.items {
		if fakeMatches(qs, item.Name+" "+item.Description) {
			cp := *item
			matches = append(matches, &cp)
		}
	}
	sortItems(matches)
	total := len(matches)
	return pageOf(matches, opts), total, nil
}

func (f *fakeItemRepo) sorted() []*models.Item {
	var out []*models.Item
	for _, item := range f.items {
		cp := *item
		out = append(out, &cp)
	}
	sortItems(out)
	return out
}

func sortItems(items []*models.Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID.String() < items[j].ID.String()
	})
}

// fakeMatches approximates the OR-form predicate: any query word present in
// the document text. Good enough to exercise the service-layer envelope.
func fakeMatches(qs search.QuerySet, text string) bool {
	lower := strings.ToLower(text)
	for _, word := range strings.Split(qs.Or, " | ") {
		if word != "" && strings.Contains(lower, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

func pageOf[T any](all []T, opts repositories.QueryOpts) []T {
	if opts.Offset >= len(all) {
		return nil
	}
	end := opts.Offset + opts.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[opts.Offset:end]
}
