package handlers

import (
	"net/http"
	"strconv"

	"dating-app-backend/internal/apperr"
	"dating-app-backend/internal/dto"
	"dating-app-backend/internal/middleware"
	"dating-app-backend/internal/pagination"
	"dating-app-backend/internal/repository"
	"dating-app-backend/internal/services"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *services.UserService
	likeService *services.LikeService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, likeService *services.LikeService) *UserHandler {
	return &UserHandler{
		userService: userService,
		likeService: likeService,
	}
}

// GetUsers handles GET /api/users
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	params, err := userParamsFromRequest(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, err := h.userService.ListUsers(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	pagination.WriteHeader(w, pagination.HeaderFor(page))
	respondJSON(w, http.StatusOK, page.Items)
}

// GetUser handles GET /api/users/{userId}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /api/users/{userId}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := authorizedUser(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req dto.UserForUpdate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.userService.UpdateUser(r.Context(), id, req); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pushTokenRequest registers the device used for push notifications
type pushTokenRequest struct {
	PushToken *string `json:"pushToken"`
}

// UpdatePushToken handles PUT /api/users/{userId}/pushToken
func (h *UserHandler) UpdatePushToken(w http.ResponseWriter, r *http.Request) {
	id, err := authorizedUser(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req pushTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.userService.UpdatePushToken(r.Context(), id, req.PushToken); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LikeUser handles POST /api/users/{userId}/like/{recipientId}
func (h *UserHandler) LikeUser(w http.ResponseWriter, r *http.Request) {
	id, err := authorizedUser(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	recipientID, err := pathInt(r, "recipientId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.likeService.LikeUser(r.Context(), id, recipientID); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{})
}

func userParamsFromRequest(r *http.Request) (repository.UserParams, error) {
	params := repository.NewUserParams(middleware.GetUserID(r.Context()))

	page := pagination.FromRequest(r)
	params.PageNumber = page.PageNumber
	params.PageSize = page.PageSize

	q := r.URL.Query()
	params.Gender = q.Get("gender")
	params.OrderBy = q.Get("orderBy")

	var err error
	if params.MinAge, err = queryInt(r, "minAge", repository.DefaultMinAge); err != nil {
		return params, err
	}
	if params.MaxAge, err = queryInt(r, "maxAge", repository.DefaultMaxAge); err != nil {
		return params, err
	}
	if params.Likers, err = queryBool(r, "likers"); err != nil {
		return params, err
	}
	if params.Likees, err = queryBool(r, "likees"); err != nil {
		return params, err
	}
	return params, nil
}

func queryInt(r *http.Request, key string, defaultVal int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.BadRequest("Invalid " + key)
	}
	return value, nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.BadRequest("Invalid " + key)
	}
	return value, nil
}
