package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

// Valid reports whether t is one of the enumerated transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeCredit || t == TypeDebit
}

// Transaction is a single signed monetary record. Amount carries the
// direction in its sign: positive for credit, negative for debit. Rows are
// immutable once written.
type Transaction struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	Amount    int64     `db:"amount"`
	SessionID string    `db:"session_id"`
	CreatedAt time.Time `db:"created_at"`
}
