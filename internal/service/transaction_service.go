package service

import (
	"context"
	"strings"
	"time"

	"pocket-ledger/internal/dto"
	"pocket-ledger/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ValidationError carries a message per offending request field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// TransactionStore is the persistence surface the service needs; implemented
// by repository.TransactionRepository.
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	ListBySession(ctx context.Context, sessionID string) ([]*models.Transaction, error)
	GetBySessionAndID(ctx context.Context, sessionID string, id uuid.UUID) (*models.Transaction, error)
	SumBySession(ctx context.Context, sessionID string) (int64, error)
}

type TransactionService struct {
	store  TransactionStore
	logger *zap.Logger
}

func NewTransactionService(store TransactionStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

// Create validates the payload and inserts one row with a fresh id and
// server-assigned timestamp. The stored amount is sign-encoded: +amount for
// credit, -amount for debit.
func (s *TransactionService) Create(ctx context.Context, sessionID string, req *dto.CreateTransactionRequest) error {
	if err := validateCreate(req); err != nil {
		return err
	}

	amount := *req.Amount
	if models.TransactionType(*req.Type) == models.TypeDebit {
		amount = -amount
	}

	tx := &models.Transaction{
		ID:        uuid.New(),
		Title:     req.Title,
		Amount:    amount,
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Create(ctx, tx); err != nil {
		return err
	}

	s.logger.Info("Transaction created",
		zap.String("id", tx.ID.String()),
		zap.Int64("amount", tx.Amount),
	)
	return nil
}

// List returns all of the session's transactions in creation order.
func (s *TransactionService) List(ctx context.Context, sessionID string) (*dto.ListTransactionsResponse, error) {
	transactions, err := s.store.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(transactions)),
	}
	for _, tx := range transactions {
		resp.Transactions = append(resp.Transactions, toResponse(tx))
	}

	return resp, nil
}

// Get resolves a single transaction scoped to the session. A miss is a
// normal outcome: the wrapped Transaction field stays nil.
func (s *TransactionService) Get(ctx context.Context, sessionID string, rawID string) (*dto.GetTransactionResponse, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"id": "must be a valid UUID"}}
	}

	tx, err := s.store.GetBySessionAndID(ctx, sessionID, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.GetTransactionResponse{}
	if tx != nil {
		r := toResponse(tx)
		resp.Transaction = &r
	}

	return resp, nil
}

// Summary returns the session's net balance.
func (s *TransactionService) Summary(ctx context.Context, sessionID string) (*dto.SummaryResponse, error) {
	sum, err := s.store.SumBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &dto.SummaryResponse{Summary: dto.Summary{Amount: sum}}, nil
}

func validateCreate(req *dto.CreateTransactionRequest) error {
	fields := map[string]string{}

	if req.Title == "" {
		fields["title"] = "is required"
	}
	if req.Amount == nil {
		fields["amount"] = "is required"
	}
	switch {
	case req.Type == nil:
		fields["type"] = "is required"
	case !models.TransactionType(*req.Type).Valid():
		fields["type"] = "must be one of credit, debit"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func toResponse(tx *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        tx.ID.String(),
		Title:     tx.Title,
		Amount:    tx.Amount,
		SessionID: tx.SessionID,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
}
