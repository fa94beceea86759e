package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/money-transfers-service/internal/config"
	"github.com/money-transfers-service/internal/domain/account"
	"github.com/money-transfers-service/internal/domain/transaction"
	"github.com/money-transfers-service/internal/logger"
	"github.com/money-transfers-service/internal/platform/clock"
	"github.com/money-transfers-service/internal/platform/idgen"
	"github.com/money-transfers-service/internal/server"
	"github.com/money-transfers-service/internal/service"
	"github.com/money-transfers-service/internal/store"
)

func main() {
	cfg, err := config.LoadConfig("server")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	numbers, err := idgen.NewIBANGenerator(cfg.Accounts.NumberCountry)
	if err != nil {
		log.Error("Failed to initialize account number generator", "error", err)
		os.Exit(1)
	}

	accounts := store.New[account.Account]()
	transactions := store.New[transaction.Transaction]()

	accountService := service.NewAccountService(
		log,
		accounts,
		transactions,
		numbers,
		idgen.UUIDGenerator{},
		clock.System(),
		cfg.Accounts.NumberMaxAttempts,
	)

	srv := server.NewServer(log, cfg, accountService)
	log.Info("REST server initialized")

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if serverErr != nil {
		log.Error("Server shutdown completed with errors", "error", serverErr)
		return
	}
	log.Info("Server shutdown completed successfully")
}
