// Package handlers contains the HTTP handlers for the inventory context.
// One handler type per operation; request structs carry validator tags and
// swagger annotations live on each Execute method.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/inventory/application/services"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

const defaultSearchLimit = 20

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"location not found"`
} // @name ErrorResponse

// LocationResponse is the JSON shape of a location.
type LocationResponse struct {
	ID          string    `json:"id"          example:"warehouse"`
	Name        string    `json:"name"        example:"Main warehouse"`
	Description string    `json:"description,omitempty"`
	ParentID    *string   `json:"parent_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
} // @name LocationResponse

// LocationTreeNodeResponse is one node of the materialized location forest.
type LocationTreeNodeResponse struct {
	LocationResponse
	Children []LocationTreeNodeResponse `json:"children"`
} // @name LocationTreeNodeResponse

// ItemResponse is the JSON shape of an item.
type ItemResponse struct {
	ID          uuid.UUID         `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string            `json:"name"        example:"Red Hammer"`
	Description string            `json:"description,omitempty"`
	LocationID  string            `json:"location_id" example:"shelf-1"`
	Properties  map[string]string `json:"properties"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
} // @name ItemResponse

// LocationSearchResponse is the pagination envelope for location search.
type LocationSearchResponse struct {
	Results    []LocationResponse `json:"results"`
	TotalCount int                `json:"total_count"`
	Offset     int                `json:"offset"`
	Limit      int                `json:"limit"`
	HasMore    bool               `json:"has_more"`
} // @name LocationSearchResponse

// ItemSearchResponse is the pagination envelope for item search.
type ItemSearchResponse struct {
	Results    []ItemResponse `json:"results"`
	TotalCount int            `json:"total_count"`
	Offset     int            `json:"offset"`
	Limit      int            `json:"limit"`
	HasMore    bool           `json:"has_more"`
} // @name ItemSearchResponse

func toLocationResponse(loc *models.Location) LocationResponse {
	return LocationResponse{
		ID:          loc.ID,
		Name:        loc.Name,
		Description: loc.Description,
		ParentID:    loc.Parent.Nullable(),
		CreatedAt:   loc.CreatedAt,
		UpdatedAt:   loc.UpdatedAt,
	}
}

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		LocationID:  item.LocationID,
		Properties:  item.Properties,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	return out
}

func toTreeResponse(nodes []*models.LocationTreeNode) []LocationTreeNodeResponse {
	out := make([]LocationTreeNodeResponse, len(nodes))
	for i, node := range nodes {
		out[i] = LocationTreeNodeResponse{
			LocationResponse: toLocationResponse(node.Location),
			Children:         toTreeResponse(node.Children),
		}
	}
	return out
}

// pageParams reads offset/limit query parameters. Missing values default to
// 0 / defaultSearchLimit; range enforcement happens in the service layer.
func pageParams(r *http.Request) (offset, limit int, err error) {
	offset, limit = 0, defaultSearchLimit
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			return 0, 0, err
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			return 0, 0, err
		}
	}
	return offset, limit, nil
}

func toLocationSearchResponse(page services.Page[*models.Location]) LocationSearchResponse {
	results := make([]LocationResponse, len(page.Results))
	for i, loc := range page.Results {
		results[i] = toLocationResponse(loc)
	}
	return LocationSearchResponse{
		Results:    results,
		TotalCount: page.TotalCount,
		Offset:     page.Offset,
		Limit:      page.Limit,
		HasMore:    page.HasMore(),
	}
}

func toItemSearchResponse(page services.Page[*models.Item]) ItemSearchResponse {
	return ItemSearchResponse{
		Results:    toItemResponses(page.Results),
		TotalCount: page.TotalCount,
		Offset:     page.Offset,
		Limit:      page.Limit,
		HasMore:    page.HasMore(),
	}
}
