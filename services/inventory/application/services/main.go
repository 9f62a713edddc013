package services

import (
	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the inventory
// bounded context. It wires domain services with their infrastructure
// implementations.
type Services struct {
	Locations *LocationService
	Items     *ItemService
}

// New wires the inventory services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	locationRepo := postgres.NewLocationRepository(a.Db, a.EventBus)
	itemRepo := postgres.NewItemRepository(a.Db, a.EventBus)
	locationCache := cache.NewLocationCache(a.Redis)
	return &Services{
		Locations: NewLocationService(locationRepo, locationCache),
		Items:     NewItemService(itemRepo, locationRepo),
	}
}
