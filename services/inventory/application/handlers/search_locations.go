package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// SearchLocationsHandler handles GET /locations/search requests.
type SearchLocationsHandler struct {
	svc *appsvcs.Services
}

// NewSearchLocationsHandler returns a SearchLocationsHandler backed by the given services.
func NewSearchLocationsHandler(svc *appsvcs.Services) *SearchLocationsHandler {
	return &SearchLocationsHandler{svc: svc}
}

// Execute runs a ranked full-text search over locations.
//
//	@Summary		Search locations
//	@Description	Ranked full-text search; term is required, limit is capped at 100
//	@Tags			locations
//	@Produce		json
//	@Param			term	query		string	true	"Search term"
//	@Param			offset	query		int		false	"Rows to skip"		default(0)
//	@Param			limit	query		int		false	"Page size (max 100)"	default(20)
//	@Success		200		{object}	LocationSearchResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/locations/search [get]
func (h *SearchLocationsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := pageParams(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "offset and limit must be integers")
		return
	}

	page, err := h.svc.Locations.Search(r.Context(), r.URL.Query().Get("term"), offset, limit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toLocationSearchResponse(page))
}
