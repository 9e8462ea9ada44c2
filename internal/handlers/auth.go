package handlers

import (
	"net/http"
	"strconv"

	"dating-app-backend/internal/dto"
	"dating-app-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.UserForRegister
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info().Int("user_id", user.ID).Str("username", user.Username).Msg("User registered")

	w.Header().Set("Location", "/api/users/"+strconv.Itoa(user.ID))
	respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.UserForLogin
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
