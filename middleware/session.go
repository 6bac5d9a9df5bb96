package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ryanmedeirosp/Diet-Daily-app/database"
	"github.com/Ryanmedeirosp/Diet-Daily-app/models"

	"github.com/google/uuid"
)

// Define context keys
type contextKey string

const SessionKey contextKey = "session"
const UserKey contextKey = "user"

const (
	// SessionCookieName is the cookie carrying the opaque session token.
	SessionCookieName = "sessionId"
	// SessionDuration is how long a minted session cookie lives (7 days).
	SessionDuration = 7 * 24 * time.Hour
)

// RequireSession guards the ledger read routes. Any non-empty cookie token
// is accepted as the partition key; the ledger has no account rows to
// validate against.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := CookieToken(r)
		if token == "" {
			writeUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, models.Session{Token: token})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser guards the meal routes. The token must resolve to a
// registered account; a missing or unknown token is rejected before any
// meal data is touched. A ledger-only token never passes this check.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := CookieToken(r)
		if token == "" {
			writeUnauthorized(w)
			return
		}

		var user models.User
		err := database.DB.QueryRow(
			"SELECT id, name, email, session_token, created_at FROM users WHERE session_token = ?",
			token,
		).Scan(&user.ID, &user.Name, &user.Email, &user.SessionToken, &user.CreatedAt)
		if err == sql.ErrNoRows {
			writeUnauthorized(w)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CookieToken returns the session token presented by the caller, or "".
func CookieToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// EnsureSession reuses the caller's token verbatim when one is presented,
// otherwise mints a new one and issues the cookie. Only the minting
// response carries a Set-Cookie header.
func EnsureSession(w http.ResponseWriter, r *http.Request) string {
	if token := CookieToken(r); token != "" {
		return token
	}

	token := uuid.NewString()
	SetSessionCookie(w, token)
	return token
}

// SetSessionCookie issues the session cookie with its fixed lifetime and
// root path scope.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
	})
}

// GetSessionFromContext retrieves the anonymous ledger identity resolved
// by RequireSession. The zero value means no session was resolved.
func GetSessionFromContext(r *http.Request) models.Session {
	if session, ok := r.Context().Value(SessionKey).(models.Session); ok {
		return session
	}
	return models.Session{}
}

// GetUserFromContext retrieves the registered account resolved by
// RequireUser, or nil.
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserKey).(*models.User); ok {
		return user
	}
	return nil
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
