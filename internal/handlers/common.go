package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dating-app-backend/internal/apperr"
	"dating-app-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError sends an error response. Errors that are not AppErrors are
// reported as internal errors.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.As(err)
	if appErr == nil {
		appErr = apperr.Internal(err)
	}

	event := log.Warn()
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(appErr.Cause).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", appErr.HTTPStatus).
		Str("code", appErr.Code).
		Msg(appErr.Message)

	respondJSON(w, appErr.HTTPStatus, appErr)
}

// decodeJSON reads the request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.BadRequest("Invalid request body").WithCause(err)
	}
	return nil
}

// pathInt parses an integer route parameter
func pathInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value <= 0 {
		return 0, apperr.BadRequest("Invalid " + name)
	}
	return value, nil
}

// authorizedUser returns the route's user ID after checking it is the
// caller's own.
func authorizedUser(r *http.Request, name string) (int, error) {
	userID, err := pathInt(r, name)
	if err != nil {
		return 0, err
	}
	if userID != middleware.GetUserID(r.Context()) {
		return 0, apperr.Unauthorized("Unauthorized")
	}
	return userID, nil
}
