// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/valeriaulyamaeva/finance-tracker/internal/config"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
)

// New opens a migrated SQLite database in a temporary directory. It is
// closed when the test finishes.
func New(t testing.TB) *database.DB {
	t.Helper()
	return NewWithConfig(t, config.DBConfig{MaxOpenConns: 4, MaxIdleConns: 2, ConnMaxLifetime: time.Minute})
}

// NewWithConfig is New with explicit pool settings. Driver and DSN are
// overridden.
func NewWithConfig(t testing.TB, cfg config.DBConfig) *database.DB {
	t.Helper()
	cfg.Driver = config.DriverSQLite
	cfg.DSN = filepath.Join(t.TempDir(), "finance.db")

	ctx := context.Background()
	db, err := database.Open(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("ошибка подключения к БД: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("ошибка миграции: %v", err)
	}
	return db
}
