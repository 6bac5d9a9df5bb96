package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ryanmedeirosp/Diet-Daily-app/database"
	"github.com/Ryanmedeirosp/Diet-Daily-app/middleware"
	"github.com/Ryanmedeirosp/Diet-Daily-app/models"
	"github.com/Ryanmedeirosp/Diet-Daily-app/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// CreateTransaction records a ledger entry under the caller's session,
// minting a session when no cookie is presented. The amount's sign is
// normalized here: credits stay positive, debits are negated.
func CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string          `json:"title"`
		Amount decimal.Decimal `json:"amount"`
		Type   string          `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if req.Type != models.TransactionTypeCredit && req.Type != models.TransactionTypeDebit {
		http.Error(w, "type must be credit or debit", http.StatusBadRequest)
		return
	}

	token := middleware.EnsureSession(w, r)

	amount := req.Amount
	if req.Type == models.TransactionTypeDebit {
		amount = amount.Neg()
	}

	_, err := database.DB.Exec(`
		INSERT INTO transactions (id, title, amount, session_token, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.NewString(), req.Title, amount, token, time.Now())

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func GetTransactions(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r)
	if session.Token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(`
		SELECT id, title, amount, session_token, created_at
		FROM transactions
		WHERE session_token = ?
	`, session.Token)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.Title, &t.Amount, &t.SessionToken, &t.CreatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		transactions = append(transactions, t)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"transactions": transactions})
}

// GetTransaction returns a single ledger entry, or null when the id does
// not exist or belongs to another session. The two cases are deliberately
// indistinguishable to the caller.
func GetTransaction(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r)
	if session.Token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]

	var t models.Transaction
	err := database.DB.QueryRow(`
		SELECT id, title, amount, session_token, created_at
		FROM transactions
		WHERE session_token = ? AND id = ?
	`, session.Token, id).Scan(&t.ID, &t.Title, &t.Amount, &t.SessionToken, &t.CreatedAt)

	w.Header().Set("Content-Type", "application/json")
	if err == sql.ErrNoRows {
		json.NewEncoder(w).Encode(map[string]interface{}{"transaction": nil})
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"transaction": t})
}

func GetTransactionSummary(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r)
	if session.Token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	amount, err := services.SummarizeTransactions(session.Token)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"summary": map[string]interface{}{"amount": amount},
	})
}
