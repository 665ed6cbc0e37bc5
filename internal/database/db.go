package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/valeriaulyamaeva/finance-tracker/internal/config"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

// DB owns the connection pool for the lifetime of the process. It is opened
// once at startup and closed at shutdown.
type DB struct {
	Gorm *gorm.DB

	sqlDB *sql.DB
	pool  *pgxpool.Pool
}

// Open connects to the configured database and applies connection pool
// limits. The schema is not touched; see Migrate.
func Open(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*DB, error) {
	gcfg := &gorm.Config{
		Logger: gormlogger.New(&log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	db := &DB{}
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		pcfg, err := pgxpool.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("некорректный DATABASE_URL: %w", err)
		}
		if cfg.MaxOpenConns > 0 {
			pcfg.MaxConns = int32(cfg.MaxOpenConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			pcfg.MaxConnLifetime = cfg.ConnMaxLifetime
		}
		pool, err := pgxpool.NewWithConfig(ctx, pcfg)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
		}
		db.pool = pool
		db.sqlDB = stdlib.OpenDBFromPool(pool)
		dialector = postgres.New(postgres.Config{Conn: db.sqlDB})
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}

	g, err := gorm.Open(dialector, gcfg)
	if err != nil {
		db.close()
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	db.Gorm = g

	if db.sqlDB == nil {
		if db.sqlDB, err = g.DB(); err != nil {
			return nil, err
		}
	}
	db.sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	db.sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	db.sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(ctx); err != nil {
		db.close()
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	return db, nil
}

// Migrate creates the transactions table if it does not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if err := db.Gorm.WithContext(ctx).AutoMigrate(&models.Transaction{}); err != nil {
		return fmt.Errorf("ошибка создания схемы: %w", err)
	}
	return nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.sqlDB.PingContext(ctx)
}

func (db *DB) Close() error {
	return db.close()
}

func (db *DB) close() error {
	var err error
	if db.sqlDB != nil {
		err = db.sqlDB.Close()
	}
	if db.pool != nil {
		db.pool.Close()
	}
	return err
}

// Stats reports connection pool usage.
func (db *DB) Stats() sql.DBStats {
	return db.sqlDB.Stats()
}
