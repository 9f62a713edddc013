package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/errhttp"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// DeleteLocationHandler handles DELETE /locations/{id} requests.
type DeleteLocationHandler struct {
	svc *appsvcs.Services
}

// NewDeleteLocationHandler returns a DeleteLocationHandler backed by the given services.
func NewDeleteLocationHandler(svc *appsvcs.Services) *DeleteLocationHandler {
	return &DeleteLocationHandler{svc: svc}
}

// Execute deletes a location. Locations with children or items cannot be
// deleted; the error message names the blocking constraint.
//
//	@Summary	Delete location
//	@Tags		locations
//	@Produce	json
//	@Param		id	path	string	true	"Location id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Router		/locations/{id} [delete]
func (h *DeleteLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Locations.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
