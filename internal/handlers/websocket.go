package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"dating-app-backend/internal/apperr"
	"dating-app-backend/internal/middleware"
	"dating-app-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Browser clients are authenticated by token
	},
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub            *services.WSHub
	authService    *services.AuthService
	messageService *services.MessageService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *services.WSHub,
	authService *services.AuthService,
	messageService *services.MessageService,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		authService:    authService,
		messageService: messageService,
	}
}

// HandleWebSocket handles GET /ws?token=
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.ValidateWebSocketToken(r.URL.Query().Get("token"), h.authService)
	if err != nil {
		respondError(w, r, apperr.Unauthorized("invalid token").WithCause(err))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID, conn)

	log.Info().Int("user_id", userID).Msg("WebSocket connection established")

	ctx := r.Context()
	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Int("user_id", userID).Msg("WebSocket error")
			}
			break
		}

		var msg services.WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Error().Err(err).Int("user_id", userID).Msg("Failed to parse WebSocket message")
			h.sendError(userID, "Invalid message format")
			continue
		}

		if err := h.handleMessage(ctx, userID, msg); err != nil {
			log.Error().Err(err).Int("user_id", userID).Str("type", msg.Type).Msg("Failed to handle message")
			h.sendError(userID, err.Error())
		}
	}
}

// handleMessage processes incoming WebSocket messages
func (h *WebSocketHandler) handleMessage(ctx context.Context, userID int, msg services.WSMessage) error {
	switch msg.Type {
	case "ping":
		return h.hub.SendToUser(userID, services.WSMessage{Type: services.EventPong})
	case "mark_read":
		if msg.MessageID == 0 {
			return apperr.BadRequest("messageId is required")
		}
		return h.messageService.MarkAsRead(ctx, userID, msg.MessageID)
	default:
		return apperr.BadRequest("Unknown message type")
	}
}

// sendError sends an error event to the user's connection
func (h *WebSocketHandler) sendError(userID int, message string) {
	err := h.hub.SendToUser(userID, services.WSMessage{
		Type:    services.EventError,
		Message: message,
	})
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("Failed to send error event")
	}
}
