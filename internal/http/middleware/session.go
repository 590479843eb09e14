package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keebstore/storefront/internal/auth"
	"github.com/keebstore/storefront/internal/observability"
)

const SessionCookieName = "storefront_session"

type contextKey string

const sessionIDKey = contextKey("session_id")

// Session makes sure every request carries a visitor session id. A missing or
// invalid cookie starts a new session and sets a fresh signed cookie.
func Session(secret []byte, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookieName); err == nil {
				id, _ = auth.ParseSessionToken(c.Value, secret)
			}

			if id == "" {
				id = uuid.NewString()
				token, err := auth.GenerateSessionToken(id, secret, ttl)
				if err != nil {
					observability.FromContext(r.Context()).Error("failed to sign session token", zap.Error(err))
					http.Error(w, "could not start session", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   r.TLS != nil,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID returns the session id set by Session, or "".
func GetSessionID(r *http.Request) string {
	if val, ok := r.Context().Value(sessionIDKey).(string); ok {
		return val
	}
	return ""
}
