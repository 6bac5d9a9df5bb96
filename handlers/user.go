package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Ryanmedeirosp/Diet-Daily-app/database"
	"github.com/Ryanmedeirosp/Diet-Daily-app/middleware"

	"github.com/google/uuid"
)

// CreateUser registers an account and binds it to the caller's session
// token, minting one when no cookie is presented. A duplicate email fails
// before any token is minted or reused, so a conflicting registration
// never touches the caller's cookie.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Email == "" {
		http.Error(w, "name and email are required", http.StatusBadRequest)
		return
	}

	var existingID string
	err := database.DB.QueryRow("SELECT id FROM users WHERE email = ?", req.Email).Scan(&existingID)
	if err == nil {
		writeConflict(w, "user already exists")
		return
	}
	if err != sql.ErrNoRows {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	token := middleware.EnsureSession(w, r)

	_, err = database.DB.Exec(`
		INSERT INTO users (id, name, email, session_token, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.NewString(), req.Name, req.Email, token, time.Now())

	if err != nil {
		// A concurrent registration can slip past the check above; the
		// UNIQUE constraint is the only guard against that race.
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			writeConflict(w, "user already exists")
			return
		}
		// A reused cookie token may already be bound to another account
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.session_token") {
			writeConflict(w, "session already bound to an account")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func writeConflict(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
