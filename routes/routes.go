package routes

import (
	"database/sql"

	"github.com/FinanzasVH/finanzas-api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupIngestRoutes wires the statement-import review workflow.
func SetupIngestRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	h := handlers.NewIngestHandler(db, ws)

	rg.POST("/ingest/sessions", h.StageSession)
	rg.GET("/ingest/sessions/:id", h.GetSession)
	rg.POST("/ingest/sessions/:id/items/:index/toggle", h.ToggleItem)
	rg.PUT("/ingest/sessions/:id/items/:index", h.EditItem)
	rg.POST("/ingest/sessions/:id/commit", h.CommitSession)
	rg.DELETE("/ingest/sessions/:id", h.AbandonSession)
}

// SetupTransactionRoutes wires the transaction store endpoints.
func SetupTransactionRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := handlers.NewTransactionHandler(db)

	rg.GET("/transactions", h.GetTransactions)
	rg.GET("/transactions/periods", h.GetPeriods)
	rg.POST("/transactions", h.CreateTransaction)
	rg.DELETE("/transactions/:id", h.DeleteTransaction)
}

// SetupTransferRoutes wires internal transfers between own accounts.
func SetupTransferRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	h := handlers.NewTransferHandler(db, ws)

	rg.GET("/transfers", h.GetTransfers)
	rg.GET("/transfers/:id", h.GetTransfer)
	rg.POST("/transfers", h.CreateTransfer)
	rg.DELETE("/transfers/:id", h.DeleteTransfer)
}

// SetupRuleRoutes wires custom classification rules.
func SetupRuleRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := handlers.NewRuleHandler(db)

	rg.GET("/rules", h.GetRules)
	rg.POST("/rules", h.CreateRule)
	rg.PUT("/rules/:id", h.UpdateRule)
	rg.DELETE("/rules/:id", h.DeleteRule)
	rg.POST("/rules/suggest", h.SuggestRule)

	classify := handlers.NewClassifyHandler(db)
	rg.POST("/classify", classify.ClassifyLabel)
}

// SetupAccountRoutes wires account management.
func SetupAccountRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := handlers.NewAccountHandler(db)

	rg.GET("/accounts", h.GetAccounts)
	rg.POST("/accounts", h.CreateAccount)
	rg.PUT("/accounts/:id", h.UpdateAccount)
}
