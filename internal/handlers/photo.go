package handlers

import (
	"net/http"

	"dating-app-backend/internal/dto"
	"dating-app-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photoService *services.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// GetPhoto handles GET /api/users/{userId}/photos/{id}
func (h *PhotoHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	photo, err := h.photoService.GetPhoto(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, photo)
}

// AddPhoto handles POST /api/users/{userId}/photos
func (h *PhotoHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUser(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req dto.PhotoForCreation
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	upload, err := h.photoService.AddPhotoForUser(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info().
		Int("user_id", userID).
		Int("photo_id", upload.Photo.ID).
		Str("filename", req.Filename).
		Msg("Pre-signed URL generated")

	respondJSON(w, http.StatusCreated, upload)
}

// SetMainPhoto handles POST /api/users/{userId}/photos/{id}/setMain
func (h *PhotoHandler) SetMainPhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUser(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.photoService.SetMainPhoto(r.Context(), userID, id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeletePhoto handles DELETE /api/users/{userId}/photos/{id}
func (h *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUser(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.photoService.DeletePhoto(r.Context(), userID, id); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{})
}
