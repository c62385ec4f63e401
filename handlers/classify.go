package handlers

import (
	"database/sql"
	"net/http"

	"github.com/FinanzasVH/finanzas-api/middleware"
	"github.com/FinanzasVH/finanzas-api/services"

	"github.com/gin-gonic/gin"
)

type ClassifyHandler struct {
	Classifier *services.ClassifierService
	Rules      *services.RuleService
}

func NewClassifyHandler(db *sql.DB) *ClassifyHandler {
	return &ClassifyHandler{
		Classifier: services.NewClassifierService(db),
		Rules:      services.NewRuleService(db),
	}
}

type ClassifyRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
}

// ClassifyLabel classifies a single description/amount pair against the
// user's rules, the system rules and — when configured — the external
// classifier. Handy for previewing how a movement would be categorized.
func (h *ClassifyHandler) ClassifyLabel(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customRules, err := h.Rules.GetUserRules(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rules"})
		return
	}

	c.JSON(http.StatusOK, h.Classifier.ClassifyEntry(c.Request.Context(), req.Description, req.Amount, customRules))
}
