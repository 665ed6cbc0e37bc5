package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/valeriaulyamaeva/finance-tracker/internal/handlers"
)

type Deps struct {
	Transactions handlers.TransactionStore
	DB           handlers.Pinger
	CORSOrigins  []string
	Logger       zerolog.Logger
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(d.Logger), Recovery(d.Logger), CORS(d.CORSOrigins))

	r.GET("/health", handlers.HealthHandler(d.DB))

	r.POST("/transactions/", handlers.CreateTransactionHandler(d.Transactions))
	r.GET("/transactions/", handlers.GetTransactionsHandler(d.Transactions))

	return r
}
