package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types accepted at creation. The type is not stored; it only
// decides the sign of the amount (credit positive, debit negative).
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

type Transaction struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	SessionToken string          `json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
}
