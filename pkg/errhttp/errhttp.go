// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/stockroom/pkg/httpx"
	inventorydomain "github.com/ghuser/stockroom/services/inventory/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, inventorydomain.ErrInvalidArgument):
		return http.StatusBadRequest // 400
	case errors.Is(err, inventorydomain.ErrLocationNotFound),
		errors.Is(err, inventorydomain.ErrParentNotFound),
		errors.Is(err, inventorydomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, inventorydomain.ErrLocationExists),
		errors.Is(err, inventorydomain.ErrCycleDetected),
		errors.Is(err, inventorydomain.ErrLocationHasChildren),
		errors.Is(err, inventorydomain.ErrLocationHasItems):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
