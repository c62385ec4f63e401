package models

import (
	"time"
)

// ClassificationRule matches a statement description against a pattern.
// Custom rules (user-defined, ordered) always take priority over the
// built-in system rules; within a collection the first match wins.
type ClassificationRule struct {
	ID         string    `json:"id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Label      string    `json:"label"`
	Pattern    string    `json:"pattern"` // case-insensitive regex
	Type       TxType    `json:"type"`
	Category   string    `json:"category"`
	IsInternal bool      `json:"is_internal"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

type CreateRuleRequest struct {
	Label      string `json:"label" binding:"required"`
	Pattern    string `json:"pattern" binding:"required"`
	Type       TxType `json:"type" binding:"required"`
	Category   string `json:"category" binding:"required"`
	IsInternal bool   `json:"is_internal"`
}

type UpdateRuleRequest struct {
	Label      string `json:"label"`
	Pattern    string `json:"pattern"`
	Type       TxType `json:"type"`
	Category   string `json:"category"`
	IsInternal *bool  `json:"is_internal"`
	Position   *int   `json:"position"`
}

type SuggestRuleRequest struct {
	Description string `json:"description" binding:"required"`
	Type        TxType `json:"type"`
	Category    string `json:"category"`
}

// RuleSuggestion is a pre-filled rule derived from one description,
// ready for the user to tweak and save.
type RuleSuggestion struct {
	Label    string `json:"label"`
	Pattern  string `json:"pattern"`
	Type     TxType `json:"type"`
	Category string `json:"category"`
}
