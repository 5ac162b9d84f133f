package middleware

import (
	"net/http"

	"github.com/angelmondragon/ridegear-backend/internal/notifications"
)

// Notifications gives each request an inbox that responses drain into the
// envelope.
func Notifications() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(notifications.WithInbox(r.Context())))
		})
	}
}
