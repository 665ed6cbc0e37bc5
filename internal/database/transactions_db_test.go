package database_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/valeriaulyamaeva/finance-tracker/internal/config"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database/dbtest"
	"github.com/valeriaulyamaeva/finance-tracker/models"
)

func seed(t *testing.T, store *database.TransactionStore, n int) []models.Transaction {
	t.Helper()
	out := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		tr := &models.Transaction{
			Amount:      float64(i) + 0.25,
			Category:    "Food",
			Description: "Lunch",
			IsIncome:    i%2 == 0,
			Date:        "2024-01-01",
		}
		if err := store.CreateTransaction(context.Background(), tr); err != nil {
			t.Fatalf("ошибка создания транзакции: %v", err)
		}
		out = append(out, *tr)
	}
	return out
}

func TestCreateTransaction(t *testing.T) {
	store := database.NewTransactionStore(dbtest.New(t))

	transaction := &models.Transaction{
		Amount:      42.5,
		Category:    "Food",
		Description: "Lunch",
		IsIncome:    false,
		Date:        "2024-01-01",
	}
	want := *transaction

	if err := store.CreateTransaction(context.Background(), transaction); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	if transaction.ID != 1 {
		t.Errorf("ID транзакции после создания = %d, want 1", transaction.ID)
	}

	want.ID = transaction.ID
	if *transaction != want {
		t.Errorf("данные транзакции не совпадают: получили %+v, хотели %+v", *transaction, want)
	}

	list, err := store.ListTransactions(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("ошибка получения транзакций: %v", err)
	}
	if len(list) != 1 || list[0] != want {
		t.Errorf("список транзакций = %+v, want [%+v]", list, want)
	}
}

func TestCreateTransactionAssignsDistinctIDs(t *testing.T) {
	store := database.NewTransactionStore(dbtest.New(t))

	created := seed(t, store, 5)
	seen := map[uint]bool{}
	for _, tr := range created {
		if tr.ID == 0 || seen[tr.ID] {
			t.Fatalf("повторный или пустой ID %d в %+v", tr.ID, created)
		}
		seen[tr.ID] = true
	}
}

func TestCreateTransactionIgnoresCallerID(t *testing.T) {
	store := database.NewTransactionStore(dbtest.New(t))
	seed(t, store, 1)

	tr := &models.Transaction{ID: 1, Amount: -3, Category: "Rent", Description: "", Date: "not a date"}
	if err := store.CreateTransaction(context.Background(), tr); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	if tr.ID != 2 {
		t.Errorf("ID = %d, want 2", tr.ID)
	}
	if tr.Amount != -3 || tr.Date != "not a date" {
		t.Errorf("поля изменились при сохранении: %+v", tr)
	}
}

func TestListTransactionsPagination(t *testing.T) {
	store := database.NewTransactionStore(dbtest.New(t))
	all := seed(t, store, 7)

	cases := []struct {
		skip, limit int
		want        []models.Transaction
	}{
		{0, 100, all},
		{0, 3, all[:3]},
		{2, 3, all[2:5]},
		{5, 10, all[5:]},
		{7, 10, []models.Transaction{}},
		{50, 10, []models.Transaction{}},
		{3, 0, []models.Transaction{}},
	}
	for _, tc := range cases {
		got, err := store.ListTransactions(context.Background(), tc.skip, tc.limit)
		if err != nil {
			t.Fatalf("skip=%d limit=%d: %v", tc.skip, tc.limit, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("skip=%d limit=%d: получили %+v, хотели %+v", tc.skip, tc.limit, got, tc.want)
		}
	}
}

func TestListTransactionsIsRepeatable(t *testing.T) {
	store := database.NewTransactionStore(dbtest.New(t))
	seed(t, store, 4)

	first, err := store.ListTransactions(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("ошибка получения транзакций: %v", err)
	}
	second, err := store.ListTransactions(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("ошибка получения транзакций: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("результаты различаются: %+v vs %+v", first, second)
	}
}

func TestListTransactionsRejectsNegativeBounds(t *testing.T) {
	store := database.NewTransactionStore(dbtest.New(t))

	if _, err := store.ListTransactions(context.Background(), -1, 10); err == nil {
		t.Error("ожидалась ошибка для skip=-1")
	}
	if _, err := store.ListTransactions(context.Background(), 0, -1); err == nil {
		t.Error("ожидалась ошибка для limit=-1")
	}
}

func TestCountTransactions(t *testing.T) {
	store := database.NewTransactionStore(dbtest.New(t))
	seed(t, store, 3)

	n, err := store.CountTransactions(context.Background())
	if err != nil {
		t.Fatalf("ошибка подсчёта: %v", err)
	}
	if n != 3 {
		t.Errorf("количество = %d, want 3", n)
	}
}

func TestSessionReleasedOnError(t *testing.T) {
	db := dbtest.NewWithConfig(t, config.DBConfig{MaxOpenConns: 1, MaxIdleConns: 1, ConnMaxLifetime: time.Minute})
	store := database.NewTransactionStore(db)

	if err := db.Gorm.Migrator().DropTable(&models.Transaction{}); err != nil {
		t.Fatalf("ошибка удаления таблицы: %v", err)
	}
	if err := store.CreateTransaction(context.Background(), &models.Transaction{Category: "x"}); err == nil {
		t.Fatal("ожидалась ошибка без таблицы")
	}
	if _, err := store.ListTransactions(context.Background(), 0, 10); err == nil {
		t.Fatal("ожидалась ошибка без таблицы")
	}
	if inUse := db.Stats().InUse; inUse != 0 {
		t.Fatalf("соединений в работе после ошибки: %d", inUse)
	}

	// With a single-connection pool a leaked session would block here.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("ошибка миграции: %v", err)
	}
	if _, err := store.ListTransactions(ctx, 0, 10); err != nil {
		t.Fatalf("ошибка получения транзакций: %v", err)
	}
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	store := database.NewTransactionStore(dbtest.New(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.ListTransactions(ctx, 0, 10); err == nil {
		t.Error("ожидалась ошибка для отменённого контекста")
	}
}
