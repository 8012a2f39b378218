// Package controllers maps HTTP requests onto services. Controllers own the
// wire contract: request decoding, status codes, and error shaping. Business
// rules live one layer down.
package controllers

import (
	"errors"
	"net/http"

	"github.com/mymenu/mymenu/app/models"
	"github.com/mymenu/mymenu/app/services"
	"github.com/mymenu/mymenu/pkg/logger"
	"github.com/mymenu/mymenu/pkg/response"
)

// currentUser resolves the session on r. On failure it writes the response
// itself and returns ok=false; handlers just early-return. A missing or dead
// session is a 401, a store failure a 500.
func currentUser(w http.ResponseWriter, r *http.Request, sessions *services.SessionService) (models.User, bool) {
	user, err := sessions.ResolveFromRequest(r)
	if errors.Is(err, services.ErrNoSession) {
		response.Unauthorized(w)
		return models.User{}, false
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("session resolve failed", "error", err)
		response.Internal(w, "Failed to resolve session")
		return models.User{}, false
	}
	return user, true
}

// writeServiceError maps a service error to the response taxonomy.
// notFoundMsg names the entity ("Restaurant not found") so 404s stay useful
// without echoing IDs.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg, internalMsg string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, notFoundMsg)
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	default:
		logger.WithCtx(r.Context()).Error(internalMsg, "error", err)
		response.Internal(w, internalMsg)
	}
}
