package handlers

import (
	"net/http"

	"dating-app-backend/internal/dto"
	"dating-app-backend/internal/pagination"
	"dating-app-backend/internal/repository"
	"dating-app-backend/internal/services"
)

// MessageHandler handles direct message HTTP requests
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// GetMessage handles GET /api/users/{userId}/messages/{id}
func (h *MessageHandler) GetMessage(w http.ResponseWriter, r *http.Request) {
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

	message, err := h.messageService.GetMessage(r.Context(), userID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, message)
}

// GetMessagesForUser handles GET /api/users/{userId}/messages
func (h *MessageHandler) GetMessagesForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUser(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	page := pagination.FromRequest(r)
	params := repository.NewMessageParams(userID)
	params.PageNumber = page.PageNumber
	params.PageSize = page.PageSize
	if container := r.URL.Query().Get("messageContainer"); container != "" {
		params.MessageContainer = container
	}

	messages, err := h.messageService.GetMessagesForUser(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	pagination.WriteHeader(w, pagination.HeaderFor(messages))
	respondJSON(w, http.StatusOK, messages.Items)
}

// GetMessageThread handles GET /api/users/{userId}/messages/thread/{recipientId}
func (h *MessageHandler) GetMessageThread(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUser(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	recipientID, err := pathInt(r, "recipientId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	thread, err := h.messageService.GetMessageThread(r.Context(), userID, recipientID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, thread)
}

// CreateMessage handles POST /api/users/{userId}/messages
func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	userID, err := authorizedUser(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req dto.MessageForCreation
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	message, err := h.messageService.CreateMessage(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, message)
}

// DeleteMessage handles POST /api/users/{userId}/messages/{id}
func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
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

	if err := h.messageService.DeleteMessage(r.Context(), userID, id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAsRead handles POST /api/users/{userId}/messages/{id}/read
func (h *MessageHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
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

	if err := h.messageService.MarkAsRead(r.Context(), userID, id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
