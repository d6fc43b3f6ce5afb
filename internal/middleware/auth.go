package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Sguobi-git/Orders-App/internal/session"
	"github.com/Sguobi-git/Orders-App/internal/utils"
	logger "github.com/sirupsen/logrus"
)

type contextKey string

// SessionContextKey holds the *session.Session of an authenticated request
const SessionContextKey contextKey = "session"

// CookieName is the cookie carrying the session token for browsers
const CookieName = "app_session"

// Auth resolves the session token of each request
type Auth struct {
	secret   string
	sessions session.Store
}

// NewAuth creates the auth middleware
func NewAuth(secret string, sessions session.Store) *Auth {
	return &Auth{secret: secret, sessions: sessions}
}

// Token extracts the session token from the Authorization header or cookie
func Token(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// Require rejects requests without a live session
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := Token(r)
		if tokenString == "" {
			deny(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := utils.ValidateToken(tokenString, a.secret)
		if err != nil {
			deny(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		sid, ok := utils.SessionID(claims)
		if !ok {
			deny(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		sess, err := a.sessions.Get(r.Context(), sid)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logger.Errorf("❌ Session lookup failed: %v", err)
			}
			deny(w, http.StatusUnauthorized, "Session expired, please log in again")
			return
		}
		if sess.Expired(time.Now()) {
			deny(w, http.StatusUnauthorized, "Session expired, please log in again")
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects sessions without the admin flag. It must run after Require.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFrom(r.Context())
		if !ok || !sess.IsAdmin {
			deny(w, http.StatusForbidden, "Administrator access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFrom returns the session stored by Require
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionContextKey).(*session.Session)
	return sess, ok && sess != nil
}

// WithSession stores sess in ctx
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, sess)
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
