package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ActivityRecorder stores the time a user was last seen
type ActivityRecorder interface {
	TouchLastActive(ctx context.Context, userID int) error
}

// LogUserActivity updates the caller's last-active time after the handler
// runs. Requests without an authenticated user pass through untouched.
func LogUserActivity(recorder ActivityRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			userID := GetUserID(r.Context())
			if userID == 0 {
				return
			}
			// The request context may already be cancelled by now.
			if err := recorder.TouchLastActive(context.WithoutCancel(r.Context()), userID); err != nil {
				log.Error().Err(err).Int("user_id", userID).Msg("Failed to record user activity")
			}
		})
	}
}
