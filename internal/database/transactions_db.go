package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

type TransactionStore struct {
	db *DB
}

func NewTransactionStore(db *DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// withSession runs fn on a single connection taken from the pool. The
// connection goes back to the pool when withSession returns, whatever fn did.
func (s *TransactionStore) withSession(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.Gorm.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(conn.Session(&gorm.Session{NewDB: true}))
	})
}

// CreateTransaction inserts t, commits, and reloads the stored row into t so
// the caller sees the assigned ID.
func (s *TransactionStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	t.ID = 0
	err := s.withSession(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		var stored models.Transaction
		if err := tx.First(&stored, t.ID).Error; err != nil {
			return err
		}
		*t = stored
		return nil
	})
	if err != nil {
		return fmt.Errorf("ошибка при добавлении транзакции: %w", err)
	}
	return nil
}

// ListTransactions returns up to limit transactions ordered by ID, skipping
// the first skip of them.
func (s *TransactionStore) ListTransactions(ctx context.Context, skip, limit int) ([]models.Transaction, error) {
	if skip < 0 || limit < 0 {
		return nil, fmt.Errorf("некорректные параметры пагинации: skip=%d limit=%d", skip, limit)
	}

	transactions := []models.Transaction{}
	if limit == 0 {
		return transactions, nil
	}

	err := s.withSession(ctx, func(tx *gorm.DB) error {
		return tx.Order("id").Offset(skip).Limit(limit).Find(&transactions).Error
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении транзакций: %w", err)
	}
	return transactions, nil
}

func (s *TransactionStore) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	err := s.withSession(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.Transaction{}).Count(&n).Error
	})
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте транзакций: %w", err)
	}
	return n, nil
}
