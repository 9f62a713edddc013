package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// UpdateLocationRequest is the request body for PUT /locations/{id}.
// A null parent_id moves the location to the root.
type UpdateLocationRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=255" example:"Shelf 1"`
	Description string  `json:"description" validate:"max=1000"`
	ParentID    *string `json:"parent_id"   validate:"omitempty,min=1,max=64" example:"warehouse"`
} // @name UpdateLocationRequest

// PutLocationHandler handles PUT /locations/{id} requests.
type PutLocationHandler struct {
	svc *appsvcs.Services
}

// NewPutLocationHandler returns a PutLocationHandler backed by the given services.
func NewPutLocationHandler(svc *appsvcs.Services) *PutLocationHandler {
	return &PutLocationHandler{svc: svc}
}

// Execute updates a location's name, description, and parent.
//
//	@Summary		Update location
//	@Description	Updates a location; parent changes are validated against the hierarchy
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Location id"
//	@Param			request	body		UpdateLocationRequest	true	"Location update request"
//	@Success		200		{object}	LocationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/locations/{id} [put]
func (h *PutLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateLocationRequest](w, r)
	if !ok {
		return
	}

	loc, err := h.svc.Locations.Update(r.Context(), chi.URLParam(r, "id"),
		req.Name, req.Description, models.ParentFromNullable(req.ParentID))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toLocationResponse(loc))
}
