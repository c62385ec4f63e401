package models

import (
	"time"
)

// Account is a user-owned bank account, wallet or card. Statements are
// always imported against one source account; internal transfers move
// money between two of them.
type Account struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Bank      string    `json:"bank"` // bank hint key for the parser, e.g. "BBVA"
	Currency  string    `json:"currency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	Bank     string `json:"bank"`
	Currency string `json:"currency"`
}

type UpdateAccountRequest struct {
	Name   string `json:"name"`
	Bank   string `json:"bank"`
	Active *bool  `json:"active"`
}
