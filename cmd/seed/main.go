// Command seed fills the transactions table with random data for local
// development.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/valeriaulyamaeva/finance-tracker/internal/config"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/logging"
	"github.com/valeriaulyamaeva/finance-tracker/utils"
)

func main() {
	n := flag.Int("n", 50, "number of transactions to create")
	seed := flag.Int64("seed", 0, "random seed (0 picks one)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("seed: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		os.Stderr.WriteString("seed: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Ошибка подключения к БД")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		log.Fatal().Err(err).Msg("Ошибка миграции")
	}

	created, err := utils.GenerateTestTransactions(ctx, database.NewTransactionStore(db), *n, *seed)
	if err != nil {
		db.Close()
		log.Fatal().Err(err).Int("created", len(created)).Msg("Ошибка генерации транзакций")
	}
	log.Info().Int("created", len(created)).Msg("Тестовые транзакции добавлены")
}
