package handlers

import (
	"net/http"

	"dating-app-backend/internal/middleware"
	"dating-app-backend/internal/pagination"
	"dating-app-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Services bundles what the router dispatches to
type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Likes    *services.LikeService
	Photos   *services.PhotoService
	Messages *services.MessageService
	Hub      *services.WSHub
}

// NewRouter builds the HTTP API
func NewRouter(svc Services) http.Handler {
	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users, svc.Likes)
	photoHandler := NewPhotoHandler(svc.Photos)
	messageHandler := NewMessageHandler(svc.Messages)
	wsHandler := NewWebSocketHandler(svc.Hub, svc.Auth, svc.Messages)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(svc.Auth))
			r.Use(middleware.LogUserActivity(svc.Users))

			r.Get("/users", userHandler.GetUsers)
			r.Get("/users/{userId}", userHandler.GetUser)
			r.Put("/users/{userId}", userHandler.UpdateUser)
			r.Put("/users/{userId}/pushToken", userHandler.UpdatePushToken)
			r.Post("/users/{userId}/like/{recipientId}", userHandler.LikeUser)

			r.Route("/users/{userId}/photos", func(r chi.Router) {
				r.Post("/", photoHandler.AddPhoto)
				r.Get("/{id}", photoHandler.GetPhoto)
				r.Post("/{id}/setMain", photoHandler.SetMainPhoto)
				r.Delete("/{id}", photoHandler.DeletePhoto)
			})

			r.Route("/users/{userId}/messages", func(r chi.Router) {
				r.Get("/", messageHandler.GetMessagesForUser)
				r.Post("/", messageHandler.CreateMessage)
				r.Get("/thread/{recipientId}", messageHandler.GetMessageThread)
				r.Get("/{id}", messageHandler.GetMessage)
				r.Post("/{id}", messageHandler.DeleteMessage)
				r.Post("/{id}/read", messageHandler.MarkAsRead)
			})
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	return r
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", pagination.HeaderName)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
