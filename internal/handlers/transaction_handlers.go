package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/valeriaulyamaeva/finance-tracker/models"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// TransactionStore is the persistence the transaction handlers need.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, t *models.Transaction) error
	ListTransactions(ctx context.Context, skip, limit int) ([]models.Transaction, error)
}

// Создание транзакции
func CreateTransactionHandler(store TransactionStore) gin.HandlerFunc {
	useJSONFieldNames()
	return func(c *gin.Context) {
		var input models.TransactionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			abortWithBindError(c, err)
			return
		}

		transaction := input.Transaction()
		if err := store.CreateTransaction(c.Request.Context(), &transaction); err != nil {
			abortWithStorageError(c, err)
			return
		}

		c.JSON(http.StatusCreated, transaction)
	}
}

// Получение транзакций постранично (?skip=&limit=)
func GetTransactionsHandler(store TransactionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var details []FieldError
		skip, ferr := queryInt(c, "skip", defaultSkip)
		if ferr != nil {
			details = append(details, *ferr)
		}
		limit, ferr := queryInt(c, "limit", defaultLimit)
		if ferr != nil {
			details = append(details, *ferr)
		}
		if len(details) > 0 {
			abortWithFieldErrors(c, details...)
			return
		}

		transactions, err := store.ListTransactions(c.Request.Context(), skip, limit)
		if err != nil {
			abortWithStorageError(c, err)
			return
		}
		if transactions == nil {
			transactions = []models.Transaction{}
		}

		c.JSON(http.StatusOK, transactions)
	}
}

// queryInt reads a non-negative integer query parameter.
func queryInt(c *gin.Context, name string, def int) (int, *FieldError) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldError{
			Loc:  []string{"query", name},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: errTypeType,
		}
	}
	if n < 0 {
		return 0, &FieldError{
			Loc:  []string{"query", name},
			Msg:  "Input should be greater than or equal to 0",
			Type: errTypeMin,
		}
	}
	return n, nil
}
