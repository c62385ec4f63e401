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

type RuleHandler struct {
	Service *services.RuleService
}

func NewRuleHandler(db *sql.DB) *RuleHandler {
	return &RuleHandler{
		Service: services.NewRuleService(db),
	}
}

// GetRules lists the user's custom rules in evaluation order.
func (h *RuleHandler) GetRules(c *gin.Context) {
	userID := middleware.GetUserID(c)

	rules, err := h.Service.GetUserRules(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rules"})
		return
	}
	if rules == nil {
		rules = []models.ClassificationRule{}
	}
	c.JSON(http.StatusOK, rules)
}

func (h *RuleHandler) CreateRule(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.Service.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (h *RuleHandler) UpdateRule(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.Service.Update(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, sql.ErrNoRows) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *RuleHandler) DeleteRule(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rule deleted"})
}

// SuggestRule builds a rule draft from a statement description so the
// user can save a matching rule in one click.
func (h *RuleHandler) SuggestRule(c *gin.Context) {
	var req models.SuggestRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, services.SuggestRule(req.Description, req.Type, req.Category))
}
