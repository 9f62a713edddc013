package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// GetLocationItemsHandler handles GET /locations/{id}/items requests.
type GetLocationItemsHandler struct {
	svc *appsvcs.Services
}

// NewGetLocationItemsHandler returns a GetLocationItemsHandler backed by the given services.
func NewGetLocationItemsHandler(svc *appsvcs.Services) *GetLocationItemsHandler {
	return &GetLocationItemsHandler{svc: svc}
}

// Execute lists every item placed in a location.
//
//	@Summary	List items in a location
//	@Tags		items
//	@Produce	json
//	@Param		id	path		string	true	"Location id"
//	@Success	200	{array}		ItemResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/locations/{id}/items [get]
func (h *GetLocationItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Items.GetByLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}
