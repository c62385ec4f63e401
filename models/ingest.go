package models

// Confidence records where a classification came from.
type Confidence string

const (
	ConfidenceRuleMatch Confidence = "rule_match"
	ConfidenceExternal  Confidence = "external_classifier"
	ConfidenceFallback  Confidence = "fallback"
)

// RawEntry is one candidate movement extracted from a statement.
// Immutable once produced by the parser; the amount sign is already
// corrected by the bank profile (positive = in, negative = out).
type RawEntry struct {
	Date        string  `json:"date"`   // YYYY-MM-DD
	Period      string  `json:"period"` // YYYY-MM
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Classification is the result of running an entry through the rule engine.
type Classification struct {
	Type       TxType     `json:"type"`
	Category   string     `json:"category"`
	Confidence Confidence `json:"confidence"`
	RuleLabel  string     `json:"rule_label"`
	IsInternal bool       `json:"is_internal"`
}

// ClassifiedEntry is a RawEntry plus its classification.
type ClassifiedEntry struct {
	RawEntry
	Classification
}

// ReviewItem augments a ClassifiedEntry with session-local review state.
// It lives only inside a review session and is never persisted.
type ReviewItem struct {
	ClassifiedEntry
	Included           bool   `json:"included"`
	IsDuplicateSuspect bool   `json:"is_duplicate_suspect"`
	SourceAccountID    string `json:"source_account_id"`
	// DestinationAccountID is only meaningful when IsInternal is true.
	// Empty means the user has not chosen a destination yet.
	DestinationAccountID string `json:"destination_account_id,omitempty"`
}

// StageRequest starts a review session from pasted or uploaded statement data.
type StageRequest struct {
	Mode            string `json:"mode" binding:"required"` // "text" | "table"
	RawText         string `json:"raw_text" binding:"required"`
	BankHint        string `json:"bank_hint"`
	SourceAccountID string `json:"source_account_id" binding:"required"`
}

type EditItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// Editable review item fields.
const (
	FieldDescription        = "description"
	FieldType               = "type"
	FieldCategory           = "category"
	FieldDestinationAccount = "destination_account_id"
)

// SessionView is the API representation of a review session.
type SessionView struct {
	ID              string       `json:"id"`
	SourceAccountID string       `json:"source_account_id"`
	BankHint        string       `json:"bank_hint"`
	Items           []ReviewItem `json:"items"`
	Detected        int          `json:"detected"`
	Duplicates      int          `json:"duplicates"`
	Internal        int          `json:"internal"`
	ToImport        int          `json:"to_import"`
	Message         string       `json:"message,omitempty"`
}

// TransferOutcome reports the result of one mirrored-transfer submission.
type TransferOutcome struct {
	Index      int    `json:"index"`
	TransferID string `json:"transfer_id,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// CommitResult aggregates the fan-out commit: the batch of normal
// transactions plus one outcome per transfer pair.
type CommitResult struct {
	ImportedCount    int               `json:"imported_count"`
	TransfersCreated int               `json:"transfers_created"`
	TransfersFailed  int               `json:"transfers_failed"`
	TransferResults  []TransferOutcome `json:"transfer_results,omitempty"`
	Message          string            `json:"message"`
}
