package models

import (
	"time"
)

// TransferPair is the commit-side request to mirror a movement between
// two accounts owned by the same user. Amount is always unsigned; the
// transfer service decides the sign of each mirror record.
type TransferPair struct {
	SourceAccountID      string  `json:"source_account_id"`
	DestinationAccountID string  `json:"destination_account_id"`
	Amount               float64 `json:"amount"` // > 0
	Date                 string  `json:"date"`   // YYYY-MM-DD
	Note                 string  `json:"note"`
}

// InternalTransfer links the two mirror transactions created for one
// movement between own accounts. Both mirrors are excluded from analysis.
type InternalTransfer struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	SourceAccountID string    `json:"source_account_id"`
	DestAccountID   string    `json:"dest_account_id"`
	SourceName      string    `json:"source_name"`
	DestName        string    `json:"dest_name"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	TransferDate    string    `json:"transfer_date"`
	Notes           string    `json:"notes"`
	SourceTxID      string    `json:"source_tx_id"`
	DestTxID        string    `json:"dest_tx_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateTransferRequest struct {
	SourceAccountID string  `json:"source_account_id" binding:"required"`
	DestAccountID   string  `json:"dest_account_id" binding:"required"`
	Amount          float64 `json:"amount" binding:"required"`
	Currency        string  `json:"currency"`
	TransferDate    string  `json:"transfer_date" binding:"required"`
	Notes           string  `json:"notes"`
}
