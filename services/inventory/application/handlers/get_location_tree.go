package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// GetLocationTreeHandler handles GET /locations/tree requests.
type GetLocationTreeHandler struct {
	svc *appsvcs.Services
}

// NewGetLocationTreeHandler returns a GetLocationTreeHandler backed by the given services.
func NewGetLocationTreeHandler(svc *appsvcs.Services) *GetLocationTreeHandler {
	return &GetLocationTreeHandler{svc: svc}
}

// Execute materializes the full location hierarchy as an ordered forest.
//
//	@Summary	Get location tree
//	@Tags		locations
//	@Produce	json
//	@Success	200	{array}		LocationTreeNodeResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/locations/tree [get]
func (h *GetLocationTreeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	roots, err := h.svc.Locations.GetTree(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toTreeResponse(roots))
}
