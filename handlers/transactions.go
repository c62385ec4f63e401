package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/FinanzasVH/finanzas-api/middleware"
	"github.com/FinanzasVH/finanzas-api/models"
	"github.com/FinanzasVH/finanzas-api/services"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	Service *services.TransactionService
}

func NewTransactionHandler(db *sql.DB) *TransactionHandler {
	return &TransactionHandler{
		Service: services.NewTransactionService(db),
	}
}

// GetTransactions lists the user's transactions, optionally by period.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)

	txs, err := h.Service.List(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	c.JSON(http.StatusOK, txs)
}

// GetPeriods lists the periods that hold data.
func (h *TransactionHandler) GetPeriods(c *gin.Context) {
	userID := middleware.GetUserID(c)

	periods, err := h.Service.ListPeriods(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch periods"})
		return
	}
	if periods == nil {
		periods = []models.PeriodSummary{}
	}
	c.JSON(http.StatusOK, periods)
}

// CreateTransaction inserts one manually-entered movement.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.Service.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// DeleteTransaction removes one movement. Mirror records of internal
// transfers are refused: those go away with their transfer.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID := middleware.GetUserID(c)

	err := h.Service.Delete(c.Request.Context(), c.Param("id"), userID)
	switch {
	case errors.Is(err, services.ErrMirrorTransaction):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Este movimiento pertenece a una transferencia interna. Elimínala desde Transferencias.",
		})
	case errors.Is(err, sql.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
	}
}
