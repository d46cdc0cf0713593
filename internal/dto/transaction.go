package dto

// CreateTransactionRequest is the POST /transactions payload. Amount and
// Type are pointers so a missing field is distinguishable from a zero value.
type CreateTransactionRequest struct {
	Title  string  `json:"title"`
	Amount *int64  `json:"amount"`
	Type   *string `json:"type"`
}

type TransactionResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Amount    int64  `json:"amount"`
	SessionID string `json:"session_id"`
	CreatedAt string `json:"created_at"`
}

type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// GetTransactionResponse wraps a single lookup; Transaction is null when no
// row matches the caller's session and id.
type GetTransactionResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
}

type SummaryResponse struct {
	Summary Summary `json:"summary"`
}

type Summary struct {
	Amount int64 `json:"amount"`
}
