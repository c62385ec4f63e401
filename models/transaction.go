package models

import (
	"time"
)

// TxType is the classification type of a movement.
type TxType string

const (
	TypeIncome          TxType = "income"
	TypeFixedExpense    TxType = "fixed_expense"
	TypeVariableExpense TxType = "variable_expense"
	TypeDebtPayment     TxType = "debt_payment"
	TypeSavings         TxType = "savings"
)

// ValidTypes lists every accepted transaction type, used for request validation.
var ValidTypes = []TxType{
	TypeIncome, TypeFixedExpense, TypeVariableExpense, TypeDebtPayment, TypeSavings,
}

func IsValidType(t TxType) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Transaction sources
const (
	SourceImportText       = "import_text"
	SourceImportTable      = "import_table"
	SourceManual           = "manual"
	SourceInternalTransfer = "internal_transfer"
)

type Transaction struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Date        string  `json:"date"`   // YYYY-MM-DD
	Period      string  `json:"period"` // YYYY-MM, derived from Date
	Description string  `json:"description"`
	Amount      float64 `json:"amount"` // positive = money in, negative = money out
	Type        TxType  `json:"type"`
	Category    string  `json:"category"`
	AccountID   string  `json:"account_id"`
	Source      string  `json:"source"`
	// Mirror records of internal transfers are excluded from every
	// spending metric so the money is not counted twice.
	ExcludedFromAnalysis bool      `json:"excluded_from_analysis"`
	CreatedAt            time.Time `json:"created_at"`
}

type CreateTransactionRequest struct {
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Type        TxType  `json:"type" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	AccountID   string  `json:"account_id" binding:"required"`
}

type PeriodSummary struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// Period derives the YYYY-MM period from an ISO date.
func Period(isoDate string) string {
	if len(isoDate) < 7 {
		return isoDate
	}
	return isoDate[:7]
}
