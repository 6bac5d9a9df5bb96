package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ryanmedeirosp/Diet-Daily-app/database"
	"github.com/Ryanmedeirosp/Diet-Daily-app/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransactionMintsSession(t *testing.T) {
	SetupTestDB(t)

	req := NewJSONRequest("POST", "/transactions", map[string]interface{}{
		"title":  "salary",
		"amount": 2500,
		"type":   "credit",
	})
	w := httptest.NewRecorder()

	CreateTransaction(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	cookie := SessionCookieFromResponse(w)
	require.NotNil(t, cookie, "a first write must mint the session cookie")
	assert.NotEmpty(t, cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 7*24*60*60, cookie.MaxAge)

	var amount decimal.Decimal
	err := database.DB.QueryRow(
		"SELECT amount FROM transactions WHERE session_token = ?", cookie.Value,
	).Scan(&amount)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(2500)))
}

func TestCreateTransactionReusesPresentedToken(t *testing.T) {
	SetupTestDB(t)

	token := uuid.NewString()
	req := WithSessionCookie(NewJSONRequest("POST", "/transactions", map[string]interface{}{
		"title":  "groceries",
		"amount": 120.75,
		"type":   "debit",
	}), token)
	w := httptest.NewRecorder()

	CreateTransaction(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, SessionCookieFromResponse(w), "an existing session must not be re-issued")

	var count int
	err := database.DB.QueryRow(
		"SELECT COUNT(*) FROM transactions WHERE session_token = ?", token,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateTransactionNormalizesDebitSign(t *testing.T) {
	SetupTestDB(t)

	token := uuid.NewString()
	req := WithSessionCookie(NewJSONRequest("POST", "/transactions", map[string]interface{}{
		"title":  "rent",
		"amount": 900.50,
		"type":   "debit",
	}), token)
	w := httptest.NewRecorder()

	CreateTransaction(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var amount decimal.Decimal
	err := database.DB.QueryRow(
		"SELECT amount FROM transactions WHERE session_token = ?", token,
	).Scan(&amount)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("-900.50")),
		"debit amounts must be stored negative, got %s", amount)
}

func TestCreateTransactionRejectsUnknownType(t *testing.T) {
	SetupTestDB(t)

	req := NewJSONRequest("POST", "/transactions", map[string]interface{}{
		"title":  "mystery",
		"amount": 10,
		"type":   "transfer",
	})
	w := httptest.NewRecorder()

	CreateTransaction(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTransactionsScopedBySession(t *testing.T) {
	SetupTestDB(t)

	mine := uuid.NewString()
	other := uuid.NewString()
	insertTestTransaction(t, mine, "coffee", "-4.50")
	insertTestTransaction(t, mine, "salary", "3000")
	insertTestTransaction(t, other, "not mine", "42")

	req := WithSessionContext(NewJSONRequest("GET", "/transactions", nil), mine)
	w := httptest.NewRecorder()

	GetTransactions(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	require.NoError(t, decodeBody(w, &response))
	assert.Len(t, response.Transactions, 2)
}

func TestGetTransactionHidesForeignRows(t *testing.T) {
	SetupTestDB(t)

	other := uuid.NewString()
	id := insertTestTransaction(t, other, "not mine", "42")

	req := WithSessionContext(NewJSONRequest("GET", "/transactions/"+id, nil), uuid.NewString())
	req = mux.SetURLVars(req, map[string]string{"id": id})
	w := httptest.NewRecorder()

	GetTransaction(w, req)

	// A foreign row and a missing row look identical: 200 with null
	require.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, decodeBody(w, &response))
	assert.Nil(t, response["transaction"])
}

func TestGetTransactionRoundTrip(t *testing.T) {
	SetupTestDB(t)

	token := uuid.NewString()
	id := insertTestTransaction(t, token, "paycheck", "1234.56")

	req := WithSessionContext(NewJSONRequest("GET", "/transactions/"+id, nil), token)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	w := httptest.NewRecorder()

	GetTransaction(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Transaction *models.Transaction `json:"transaction"`
	}
	require.NoError(t, decodeBody(w, &response))
	require.NotNil(t, response.Transaction)
	assert.Equal(t, id, response.Transaction.ID)
	assert.Equal(t, "paycheck", response.Transaction.Title)
	assert.True(t, response.Transaction.Amount.Equal(decimal.RequireFromString("1234.56")))
}

func TestGetTransactionSummary(t *testing.T) {
	SetupTestDB(t)

	token := uuid.NewString()
	insertTestTransaction(t, token, "salary", "3000")
	insertTestTransaction(t, token, "rent", "-900.50")
	insertTestTransaction(t, uuid.NewString(), "someone else", "500")

	req := WithSessionContext(NewJSONRequest("GET", "/transactions/summary", nil), token)
	w := httptest.NewRecorder()

	GetTransactionSummary(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Summary struct {
			Amount decimal.Decimal `json:"amount"`
		} `json:"summary"`
	}
	require.NoError(t, decodeBody(w, &response))
	assert.True(t, response.Summary.Amount.Equal(decimal.RequireFromString("2099.50")),
		"expected 2099.50, got %s", response.Summary.Amount)
}

func TestGetTransactionSummaryEmptyLedgerIsZero(t *testing.T) {
	SetupTestDB(t)

	req := WithSessionContext(NewJSONRequest("GET", "/transactions/summary", nil), uuid.NewString())
	w := httptest.NewRecorder()

	GetTransactionSummary(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Summary struct {
			Amount decimal.Decimal `json:"amount"`
		} `json:"summary"`
	}
	require.NoError(t, decodeBody(w, &response))
	assert.True(t, response.Summary.Amount.IsZero(), "zero rows must sum to zero, not null")
}
