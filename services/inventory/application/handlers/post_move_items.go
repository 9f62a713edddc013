package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
)

// MoveItemsRequest is the request body for POST /items/move.
// Every item id must exist before any item is moved.
type MoveItemsRequest struct {
	ItemIDs    []uuid.UUID `json:"item_ids"    validate:"required,min=1,dive,required"`
	LocationID string      `json:"location_id" validate:"required,min=1,max=64" example:"shelf-2"`
} // @name MoveItemsRequest

// MoveItemsResponse reports how many items were moved.
type MoveItemsResponse struct {
	MovedCount int64 `json:"moved_count" example:"3"`
} // @name MoveItemsResponse

// PostMoveItemsHandler handles POST /items/move requests.
type PostMoveItemsHandler struct {
	svc *appsvcs.Services
}

// NewPostMoveItemsHandler returns a PostMoveItemsHandler backed by the given services.
func NewPostMoveItemsHandler(svc *appsvcs.Services) *PostMoveItemsHandler {
	return &PostMoveItemsHandler{svc: svc}
}

// Execute moves a batch of items to a new leaf location.
//
//	@Summary		Move items
//	@Description	Moves a batch of items; the target must be a leaf and all ids must exist
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		MoveItemsRequest	true	"Move request"
//	@Success		200		{object}	MoveItemsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/items/move [post]
func (h *PostMoveItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[MoveItemsRequest](w, r)
	if !ok {
		return
	}

	moved, err := h.svc.Items.Move(r.Context(), req.ItemIDs, req.LocationID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, MoveItemsResponse{MovedCount: moved})
}
