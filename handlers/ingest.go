package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/FinanzasVH/finanzas-api/middleware"
	"github.com/FinanzasVH/finanzas-api/models"
	"github.com/FinanzasVH/finanzas-api/services"

	"github.com/gin-gonic/gin"
)

type IngestHandler struct {
	Service *services.ReviewService
	WS      *WSHandler
}

func NewIngestHandler(db *sql.DB, ws *WSHandler) *IngestHandler {
	return &IngestHandler{
		Service: services.NewReviewService(db),
		WS:      ws,
	}
}

// StageSession parses a statement and opens a review session.
func (h *IngestHandler) StageSession(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Mode != "text" && req.Mode != "table" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be 'text' or 'table'"})
		return
	}

	view, err := h.Service.Stage(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetSession returns the current state of a review session.
func (h *IngestHandler) GetSession(c *gin.Context) {
	userID := middleware.GetUserID(c)

	view, err := h.Service.Get(userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// ToggleItem flips the include/exclude state of one staged item.
func (h *IngestHandler) ToggleItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
		return
	}

	view, err := h.Service.ToggleInclude(userID, c.Param("id"), index)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrSessionNotFound) || errors.Is(err, services.ErrItemNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// EditItem applies a user override to one staged item.
func (h *IngestHandler) EditItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
		return
	}

	var req models.EditItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.Service.EditField(userID, c.Param("id"), index, req.Field, req.Value)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrSessionNotFound) || errors.Is(err, services.ErrItemNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// CommitSession submits the confirmed set: normal transactions to the
// store, transfer pairs to the transfer service.
func (h *IngestHandler) CommitSession(c *gin.Context) {
	userID := middleware.GetUserID(c)

	result, err := h.Service.Commit(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		var blocking *services.BlockingValidationError
		switch {
		case errors.As(err, &blocking):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":           blocking.Error(),
				"blocked_indices": blocking.Indices,
			})
		case errors.Is(err, services.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if h.WS != nil {
		h.WS.BroadcastUpdate(userID, "transactions_updated")
	}

	c.JSON(http.StatusOK, result)
}

// AbandonSession discards a session without importing anything.
func (h *IngestHandler) AbandonSession(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.Service.Abandon(userID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session discarded"})
}
