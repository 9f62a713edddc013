package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// SearchItemsHandler handles GET /items/search requests.
type SearchItemsHandler struct {
	svc *appsvcs.Services
}

// NewSearchItemsHandler returns a SearchItemsHandler backed by the given services.
func NewSearchItemsHandler(svc *appsvcs.Services) *SearchItemsHandler {
	return &SearchItemsHandler{svc: svc}
}

// Execute runs a ranked full-text search over items. A blank term
// enumerates all items, paginated and name-ordered.
//
//	@Summary		Search items
//	@Description	Ranked full-text search; a blank term lists all items paginated
//	@Tags			items
//	@Produce		json
//	@Param			term	query		string	false	"Search term"
//	@Param			offset	query		int		false	"Rows to skip"		default(0)
//	@Param			limit	query		int		false	"Page size (max 100)"	default(20)
//	@Success		200		{object}	ItemSearchResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/items/search [get]
func (h *SearchItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := pageParams(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "offset and limit must be integers")
		return
	}

	page, err := h.svc.Items.Search(r.Context(), r.URL.Query().Get("term"), offset, limit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemSearchResponse(page))
}
