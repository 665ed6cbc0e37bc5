package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

var (
	expenseCategories = []string{"Food", "Rent", "Transport", "Utilities", "Health", "Entertainment"}
	incomeCategories  = []string{"Salary", "Freelance", "Gift", "Interest"}
)

// TransactionCreator is satisfied by database.TransactionStore.
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, t *models.Transaction) error
}

// GenerateTestTransactions inserts numTransactions random transactions dated
// within the last 30 days. A zero seed picks a random one.
func GenerateTestTransactions(ctx context.Context, store TransactionCreator, numTransactions int, seed int64) ([]models.Transaction, error) {
	f := gofakeit.New(seed)
	now := time.Now()

	created := make([]models.Transaction, 0, numTransactions)
	for i := 0; i < numTransactions; i++ {
		isIncome := f.Bool()
		category := f.RandomString(expenseCategories)
		if isIncome {
			category = f.RandomString(incomeCategories)
		}

		transaction := &models.Transaction{
			Amount:      f.Price(0, 1000),
			Category:    category,
			Description: f.Sentence(5),
			IsIncome:    isIncome,
			Date:        f.DateRange(now.AddDate(0, 0, -30), now).Format("2006-01-02"),
		}
		if err := store.CreateTransaction(ctx, transaction); err != nil {
			return created, fmt.Errorf("ошибка при добавлении транзакции %d: %w", i+1, err)
		}
		created = append(created, *transaction)
	}
	return created, nil
}
