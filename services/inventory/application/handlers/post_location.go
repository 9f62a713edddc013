package handlers

import (
	"net/http"

	"github.com/ghuser/stockroom/pkg/errhttp"
	"github.com/ghuser/stockroom/pkg/httpx"
	pkgvalidator "github.com/ghuser/stockroom/pkg/validator"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// CreateLocationRequest is the request body for POST /locations.
// The id is human-chosen and becomes the location's permanent identifier.
type CreateLocationRequest struct {
	ID          string  `json:"id"          validate:"required,min=1,max=64"  example:"shelf-1"`
	Name        string  `json:"name"        validate:"required,min=1,max=255" example:"Shelf 1"`
	Description string  `json:"description" validate:"max=1000"`
	ParentID    *string `json:"parent_id"   validate:"omitempty,min=1,max=64" example:"warehouse"`
} // @name CreateLocationRequest

// PostLocationHandler handles POST /locations requests.
type PostLocationHandler struct {
	svc *appsvcs.Services
}

// NewPostLocationHandler returns a PostLocationHandler backed by the given services.
func NewPostLocationHandler(svc *appsvcs.Services) *PostLocationHandler {
	return &PostLocationHandler{svc: svc}
}

// Execute creates a new location.
//
//	@Summary		Create location
//	@Description	Creates a location, optionally nested under a parent
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateLocationRequest	true	"Location creation request"
//	@Success		201		{object}	LocationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/locations [post]
func (h *PostLocationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateLocationRequest](w, r)
	if !ok {
		return
	}

	loc, err := h.svc.Locations.Create(r.Context(), req.ID, req.Name, req.Description,
		models.ParentFromNullable(req.ParentID))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toLocationResponse(loc))
}
