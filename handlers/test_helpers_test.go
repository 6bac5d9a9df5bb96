package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ryanmedeirosp/Diet-Daily-app/database"
	"github.com/Ryanmedeirosp/Diet-Daily-app/middleware"
	"github.com/Ryanmedeirosp/Diet-Daily-app/migrations"
	"github.com/Ryanmedeirosp/Diet-Daily-app/models"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// SetupTestDB points database.DB at a fresh in-memory SQLite database with
// the full schema applied.
func SetupTestDB(t *testing.T) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// A pooled second connection would see a different in-memory database
	db.SetMaxOpenConns(1)
	require.NoError(t, migrations.RunMigrations(db))

	database.DB = db
	t.Cleanup(func() { db.Close() })
}

// CreateTestUser inserts a registered account with a fresh session token.
func CreateTestUser(t *testing.T, name, email string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		SessionToken: uuid.NewString(),
		CreatedAt:    time.Now(),
	}
	_, err := database.DB.Exec(`
		INSERT INTO users (id, name, email, session_token, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, user.ID, user.Name, user.Email, user.SessionToken, user.CreatedAt)
	require.NoError(t, err)

	return user
}

// NewJSONRequest builds a request carrying a JSON body.
func NewJSONRequest(method, url string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, url, nil)
	}

	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(method, url, bytes.NewBuffer(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithSessionCookie attaches the session cookie the way a browser would.
func WithSessionCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	return req
}

// WithSessionContext attaches a resolved anonymous session, standing in
// for the RequireSession middleware.
func WithSessionContext(req *http.Request, token string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.SessionKey, models.Session{Token: token})
	return req.WithContext(ctx)
}

// WithUserContext attaches a resolved registered account, standing in for
// the RequireUser middleware.
func WithUserContext(req *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserKey, user)
	return req.WithContext(ctx)
}

// SessionCookieFromResponse returns the sessionId cookie set on the
// response, or nil when none was issued.
func SessionCookieFromResponse(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func decodeBody(w *httptest.ResponseRecorder, v interface{}) error {
	return json.NewDecoder(w.Body).Decode(v)
}

func insertTestTransaction(t *testing.T, token, title, amount string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := database.DB.Exec(`
		INSERT INTO transactions (id, title, amount, session_token, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, title, amount, token, time.Now())
	require.NoError(t, err)

	return id
}

func insertTestMeal(t *testing.T, userID, title string, onDiet bool, date int64) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now()
	_, err := database.DB.Exec(`
		INSERT INTO meals (id, user_id, title, description, on_diet, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, userID, title, "", onDiet, date, now, now)
	require.NoError(t, err)

	return id
}
