package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// InventoryRoutes registers the inventory endpoints on the provided chi router.
// Fixed paths (tree, search, move) are registered before the {id} wildcards.
func InventoryRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/locations", func(r chi.Router) {
			r.Post("/", handlers.NewPostLocationHandler(svcs).Execute)
			r.Get("/tree", handlers.NewGetLocationTreeHandler(svcs).Execute)
			r.Get("/search", handlers.NewSearchLocationsHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetLocationHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutLocationHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteLocationHandler(svcs).Execute)
			r.Get("/{id}/items", handlers.NewGetLocationItemsHandler(svcs).Execute)
		})
		r.Route("/items", func(r chi.Router) {
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Post("/move", handlers.NewPostMoveItemsHandler(svcs).Execute)
			r.Get("/search", handlers.NewSearchItemsHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetItemHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutItemHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs).Execute)
		})
	})
}
