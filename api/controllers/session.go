package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/ridegear-backend/api/responses"
	"github.com/angelmondragon/ridegear-backend/internal/session"
)

// SessionClient resolves the visitor against the external auth origin.
type SessionClient interface {
	CurrentUser(ctx context.Context, cookies []*http.Cookie) session.State
	LoginURL() string
	LogoutURL() string
}

// SessionCurrent reports the signed-in user, or logged out when the origin
// cannot say.
func SessionCurrent(client SessionClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(r.Context(), w, client.CurrentUser(r.Context(), r.Cookies()))
	}
}

func AuthLogin(client SessionClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, client.LoginURL(), http.StatusFound)
	}
}

func AuthLogout(client SessionClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, client.LogoutURL(), http.StatusFound)
	}
}
