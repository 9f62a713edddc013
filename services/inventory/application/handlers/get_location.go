package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// GetLocationHandler handles GET /locations/{id} requests.
type GetLocationHandler struct {
	svc *appsvcs.Services
}

// NewGetLocationHandler returns a GetLocationHandler backed by the given services.
func NewGetLocationHandler(svc *appsvcs.Services) *GetLocationHandler {
	return &GetLocationHandler{svc: svc}
}

// Execute retrieves a single location.
//
//	@Summary	Get location
//	@Tags		locations
//	@Produce	json
//	@Param		id	path		string	true	"Location id"
//	@Success	200	{object}	LocationResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/locations/{id} [get]
func (h *GetLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	loc, err := h.svc.Locations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toLocationResponse(loc))
}
