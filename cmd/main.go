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

	"github.com/gin-gonic/gin"

	"github.com/valeriaulyamaeva/finance-tracker/internal/config"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/logging"
	"github.com/valeriaulyamaeva/finance-tracker/internal/routes"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "finance-tracker: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Ошибка закрытия БД")
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	r := routes.SetupRouter(routes.Deps{
		Transactions: database.NewTransactionStore(db),
		DB:           db,
		CORSOrigins:  cfg.CORSOrigins,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("driver", cfg.DB.Driver).Msg("HTTP server listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	return nil
}
