package repository

import (
	"context"
	"errors"

	"pocket-ledger/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns("id", "title", "amount", "session_id", "created_at").
		Values(tx.ID, tx.Title, tx.Amount, tx.SessionID, tx.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListBySession returns the session's transactions in creation order,
// with id as a tiebreaker for equal timestamps.
func (r *TransactionRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.Transaction, error) {
	query := squirrel.Select("id", "title", "amount", "session_id", "created_at").
		From("transactions").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.Title, &tx.Amount, &tx.SessionID, &tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}

// GetBySessionAndID returns (nil, nil) when no row matches the pair. A row
// owned by another session is indistinguishable from a missing one.
func (r *TransactionRepository) GetBySessionAndID(ctx context.Context, sessionID string, id uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select("id", "title", "amount", "session_id", "created_at").
		From("transactions").
		Where(squirrel.Eq{"session_id": sessionID, "id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var tx models.Transaction
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&tx.ID, &tx.Title, &tx.Amount, &tx.SessionID, &tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &tx, nil
}

// SumBySession returns the net balance of the session; an empty session
// sums to zero, never null.
func (r *TransactionRepository) SumBySession(ctx context.Context, sessionID string) (int64, error) {
	query := squirrel.Select("COALESCE(SUM(amount), 0)::bigint").
		From("transactions").
		Where(squirrel.Eq{"session_id": sessionID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var sum int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		return 0, err
	}

	return sum, nil
}
