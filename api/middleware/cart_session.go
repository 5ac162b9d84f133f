package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/ridegear-backend/pkg/logger"
)

const (
	cartIDHeader     = "X-Cart-Id"
	CartCookieName   = "ridegear_cart"
	cartCookieMaxAge = 30 * 24 * time.Hour
)

// CartSession resolves the visitor's cart id from the X-Cart-Id header or the
// cart cookie. A missing or malformed id is replaced with a fresh one, which is
// echoed back as both header and cookie.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cartID, ok := cartIDFromRequest(r)
			if !ok {
				cartID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CartCookieName,
					Value:    cartID,
					Path:     "/",
					MaxAge:   int(cartCookieMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(cartIDHeader, cartID)

			ctx := WithCartID(r.Context(), cartID)
			if logg != nil {
				ctx = logg.WithCartID(ctx, cartID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func cartIDFromRequest(r *http.Request) (string, bool) {
	if raw := strings.TrimSpace(r.Header.Get(cartIDHeader)); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return id.String(), true
		}
	}
	if cookie, err := r.Cookie(CartCookieName); err == nil {
		if id, err := uuid.Parse(strings.TrimSpace(cookie.Value)); err == nil {
			return id.String(), true
		}
	}
	return "", false
}
