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

type TransferHandler struct {
	Service *services.TransferService
	WS      *WSHandler
}

func NewTransferHandler(db *sql.DB, ws *WSHandler) *TransferHandler {
	return &TransferHandler{
		Service: services.NewTransferService(db),
		WS:      ws,
	}
}

// GetTransfers lists internal transfers, optionally bounded by date.
func (h *TransferHandler) GetTransfers(c *gin.Context) {
	userID := middleware.GetUserID(c)

	transfers, err := h.Service.List(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transfers"})
		return
	}
	if transfers == nil {
		transfers = []models.InternalTransfer{}
	}
	c.JSON(http.StatusOK, transfers)
}

// GetTransfer returns one transfer with resolved account names.
func (h *TransferHandler) GetTransfer(c *gin.Context) {
	userID := middleware.GetUserID(c)

	transfer, err := h.Service.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
		return
	}
	c.JSON(http.StatusOK, transfer)
}

// CreateTransfer registers a movement between two own accounts and its
// two mirror transactions.
func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transfer, err := h.Service.Create(c.Request.Context(), userID, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, sql.ErrNoRows) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if h.WS != nil {
		h.WS.BroadcastUpdate(userID, "transfer_created")
	}

	c.JSON(http.StatusCreated, gin.H{
		"transfer": transfer,
		"message":  "Transferencia de " + transfer.SourceName + " → " + transfer.DestName + " registrada. Ambas transacciones excluidas del análisis.",
	})
}

// DeleteTransfer removes a transfer and its mirror transactions when
// they are not shared with another transfer.
func (h *TransferHandler) DeleteTransfer(c *gin.Context) {
	userID := middleware.GetUserID(c)

	deleted, err := h.Service.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, services.ErrTransferNotFnd) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transfer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted_transactions": deleted,
		"message":              "Transferencia eliminada. Transacciones espejo removidas si no eran compartidas.",
	})
}
