// Command migrate creates the transactions table and exits. The server does
// the same on startup; this is for deployments that migrate separately.
package main

import (
	"context"
	"os"
	"time"

	"github.com/valeriaulyamaeva/finance-tracker/internal/config"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("migrate: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		os.Stderr.WriteString("migrate: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Ошибка подключения к БД")
	}
	defer db.Close()

	log.Info().Str("driver", cfg.DB.Driver).Msg("Applying migrations...")
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		log.Fatal().Err(err).Msg("Ошибка миграции")
	}
	log.Info().Msg("Миграция завершена успешно.")
}
