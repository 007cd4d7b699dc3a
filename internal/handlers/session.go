package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/themizzi/shopcheck/internal/services"
)

// SessionCookie names the cookie carrying the browser session id
const SessionCookie = "sessionid"

type sessionKey struct{}

// WithSession makes sure every request carries a session id, issuing a
// cookie on first contact
func WithSession(sessions services.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
				id = c.Value
			} else {
				id = sessions.NewSessionID()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
		})
	}
}

// SessionID returns the session id WithSession attached to r
func SessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}

// writeJSON sends body as JSON with status
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
