package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pocket-ledger/internal/api"
	"pocket-ledger/internal/api/handlers"
	"pocket-ledger/internal/repository"
	"pocket-ledger/internal/service"
	"pocket-ledger/pkg/config"
	"pocket-ledger/pkg/logger"
	"pocket-ledger/pkg/postgres"

	"go.uber.org/zap"
)

// @title Pocket Ledger API
// @version 1.0
// @description Session-scoped personal finance ledger

// @host localhost:8080
// @BasePath /

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting pocket-ledger service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	txRepo := repository.NewTransactionRepository(db, appLogger)
	txService := service.NewTransactionService(txRepo, appLogger)
	txHandler := handlers.NewTransactionHandler(txService, cfg.Session, appLogger)

	app := api.SetupRouter(txHandler, cfg.Session, cfg.Server, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
