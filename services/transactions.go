package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/FinanzasVH/finanzas-api/models"
	"github.com/FinanzasVH/finanzas-api/utils"

	"github.com/google/uuid"
)

// ErrMirrorTransaction is returned when a client tries to delete a
// mirror record directly instead of deleting its internal transfer.
var ErrMirrorTransaction = errors.New("transaction belongs to an internal transfer")

type TransactionService struct {
	db *sql.DB
}

func NewTransactionService(db *sql.DB) *TransactionService {
	return &TransactionService{db: db}
}

const transactionColumns = `id, user_id, date, period, description, amount, type, category, account_id, source, excluded_from_analysis, created_at`

func scanTransaction(row interface{ Scan(...any) error }) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Date, &t.Period, &t.Description, &t.Amount,
		&t.Type, &t.Category, &t.AccountID, &t.Source, &t.ExcludedFromAnalysis, &t.CreatedAt)
	return t, err
}

// List returns the user's transactions, optionally filtered by period.
func (s *TransactionService) List(ctx context.Context, userID, period string) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{userID}
	if period != "" {
		query += ` AND period = $2`
		args = append(args, period)
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// ListPeriods aggregates the distinct periods that hold data, newest first.
func (s *TransactionService) ListPeriods(ctx context.Context, userID string) ([]models.PeriodSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period, COUNT(*) FROM transactions
		WHERE user_id = $1
		GROUP BY period ORDER BY period DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []models.PeriodSummary
	for rows.Next() {
		var p models.PeriodSummary
		if err := rows.Scan(&p.Period, &p.Count); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// Create inserts a single manually-entered transaction.
func (s *TransactionService) Create(ctx context.Context, userID string, req models.CreateTransactionRequest) (*models.Transaction, error) {
	if !models.IsValidType(req.Type) {
		return nil, errors.New("invalid transaction type")
	}
	t := models.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Date:        req.Date,
		Period:      models.Period(req.Date),
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		AccountID:   req.AccountID,
		Source:      models.SourceManual,
		CreatedAt:   time.Now(),
	}
	if err := s.insert(ctx, s.db, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ImportBatch inserts a committed review batch atomically: either every
// reviewed transaction lands or none do, so a mid-batch failure never
// leaves a half-imported statement behind.
func (s *TransactionService) ImportBatch(ctx context.Context, userID string, txs []models.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}
	err := utils.WithTransaction(s.db, func(dbTx *sql.Tx) error {
		for i := range txs {
			txs[i].ID = uuid.New().String()
			txs[i].UserID = userID
			txs[i].CreatedAt = time.Now()
			if err := s.insert(ctx, dbTx, &txs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(txs), nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *TransactionService) insert(ctx context.Context, db execer, t *models.Transaction) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, t.ID, t.UserID, t.Date, t.Period, t.Description, t.Amount,
		t.Type, t.Category, t.AccountID, t.Source, t.ExcludedFromAnalysis, t.CreatedAt)
	return err
}

// Delete removes one transaction. Mirror records created by an internal
// transfer are protected: they can only go away with their transfer.
func (s *TransactionService) Delete(ctx context.Context, id, userID string) error {
	var source string
	err := s.db.QueryRowContext(ctx,
		`SELECT source FROM transactions WHERE id = $1 AND user_id = $2`, id, userID).Scan(&source)
	if err != nil {
		return err
	}
	if source == models.SourceInternalTransfer {
		return ErrMirrorTransaction
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}
