package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/spendtrace/api/internal/config"
	"github.com/spendtrace/api/internal/logger"
	"github.com/spendtrace/api/internal/router"
	"github.com/spendtrace/api/internal/service"
	"github.com/spendtrace/api/internal/storage/sqlite"
)

func main() {
	// .env is optional; in production the environment is set directly.
	_ = godotenv.Load()

	conf, err := config.Parse(os.Getenv("SPENDTRACE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse the configuration. %s", err.Error())
		os.Exit(1)
	}

	appLogger := logger.New(conf.Logger)

	appLogger.Info("Using database", "path", conf.DB.Path)

	stor, err := sqlite.New(conf.DB)
	if err != nil {
		appLogger.Fatal("Unable to get DB", "error", err.Error())
	}

	err = stor.ApplyMigrations(context.Background(), appLogger)
	if err != nil {
		appLogger.Fatal("Unable to create schema", "error", err.Error())
	}

	svc := service.New(stor, appLogger)
	handler := router.New(svc, stor, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", conf.Server.Port),
		ReadHeaderTimeout: time.Duration(conf.Server.ReadHeaderTimeout) * time.Second,
		Handler:           handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	appLogger.Info("Listening", "addr", server.Addr)

	select {
	case err = <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", "error", err)
		}
	case <-ctx.Done():
		appLogger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(conf.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err = server.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Server shutdown", "error", err)
		}
	}

	if err = stor.Close(); err != nil {
		appLogger.Error("Error closing storage", "error", err)
		os.Exit(1)
	}
}
