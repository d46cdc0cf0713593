package main

import (
	"context"
	"log"
	"time"

	"pocket-ledger/internal/models"
	"pocket-ledger/internal/repository"
	"pocket-ledger/pkg/config"
	"pocket-ledger/pkg/logger"
	"pocket-ledger/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeds a fresh session with a few demo transactions and prints the session
// token to use as the sessionId cookie.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	txRepo := repository.NewTransactionRepository(db, appLogger)

	sessionID := uuid.NewString()
	demo := []struct {
		title  string
		amount int64
	}{
		{"Salary", 6000},
		{"Rent", -2500},
		{"Groceries", -400},
	}

	for _, d := range demo {
		tx := &models.Transaction{
			ID:        uuid.New(),
			Title:     d.title,
			Amount:    d.amount,
			SessionID: sessionID,
			CreatedAt: time.Now().UTC(),
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			appLogger.Fatal("Failed to seed transaction",
				zap.String("title", d.title), zap.Error(err))
		}
	}

	appLogger.Info("Seeding complete",
		zap.String("session_id", sessionID),
		zap.Int("transactions", len(demo)),
	)
}
