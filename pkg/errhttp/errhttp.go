// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/organcare/pkg/httpx"
	organdomain "github.com/ghuser/organcare/services/organ/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors. Server errors
// answer with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	httpx.JSONError(w, status, httpx.ErrorMessage(err, status))
}

// Validation errors are checked before NotFound: a create that references an
// unknown location or organ wraps both and is a 422, not a 404.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, organdomain.ErrInvalidOrgan),
		errors.Is(err, organdomain.ErrInvalidMaintenance),
		errors.Is(err, organdomain.ErrInvalidAction),
		errors.Is(err, organdomain.ErrReasonRequired):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, organdomain.ErrOrganNotFound),
		errors.Is(err, organdomain.ErrMaintenanceNotFound),
		errors.Is(err, organdomain.ErrLocationNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, organdomain.ErrInvalidSecret):
		return http.StatusUnauthorized // 401
	case errors.Is(err, organdomain.ErrEditNotAuthorized):
		return http.StatusForbidden // 403
	case errors.Is(err, organdomain.ErrNoPendingAction):
		return http.StatusConflict // 409
	case errors.Is(err, organdomain.ErrPersistState):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
