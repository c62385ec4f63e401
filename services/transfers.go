package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/FinanzasVH/finanzas-api/models"
	"github.com/FinanzasVH/finanzas-api/utils"

	"github.com/google/uuid"
)

var (
	ErrSameAccount    = errors.New("source and destination must be different accounts")
	ErrInvalidAmount  = errors.New("transfer amount must be greater than zero")
	ErrTransferNotFnd = errors.New("transfer not found")
)

// TransferService records movements between a user's own accounts as
// two mirrored transactions (a debit in the source account and a credit
// in the destination), both excluded from analysis so the money is
// never counted twice.
type TransferService struct {
	db       *sql.DB
	accounts *AccountService
}

func NewTransferService(db *sql.DB) *TransferService {
	return &TransferService{
		db:       db,
		accounts: NewAccountService(db),
	}
}

// Create validates both accounts and writes the transfer plus its two
// mirror records in one database transaction.
func (s *TransferService) Create(ctx context.Context, userID string, req models.CreateTransferRequest) (*models.InternalTransfer, error) {
	if req.SourceAccountID == req.DestAccountID {
		return nil, ErrSameAccount
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	src, err := s.accounts.GetByID(ctx, req.SourceAccountID, userID)
	if err != nil {
		return nil, fmt.Errorf("source account not found: %w", err)
	}
	dst, err := s.accounts.GetByID(ctx, req.DestAccountID, userID)
	if err != nil {
		return nil, fmt.Errorf("destination account not found: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = src.Currency
	}

	amount := math.Abs(req.Amount)
	transfer := &models.InternalTransfer{
		ID:              uuid.New().String(),
		UserID:          userID,
		SourceAccountID: src.ID,
		DestAccountID:   dst.ID,
		SourceName:      src.Name,
		DestName:        dst.Name,
		Amount:          amount,
		Currency:        currency,
		TransferDate:    req.TransferDate,
		Notes:           req.Notes,
		SourceTxID:      uuid.New().String(),
		DestTxID:        uuid.New().String(),
		CreatedAt:       time.Now(),
	}

	err = utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		// Outgoing mirror in the source account.
		if err := s.insertMirror(ctx, tx, transfer.SourceTxID, userID, req.TransferDate,
			"Transferencia a "+dst.Name, -amount, models.TypeVariableExpense, src.ID); err != nil {
			return err
		}
		// Incoming mirror in the destination account.
		if err := s.insertMirror(ctx, tx, transfer.DestTxID, userID, req.TransferDate,
			"Transferencia desde "+src.Name, amount, models.TypeIncome, dst.ID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO internal_transfers
				(id, user_id, source_account_id, dest_account_id, amount, currency, transfer_date, notes, source_tx_id, dest_tx_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, transfer.ID, transfer.UserID, transfer.SourceAccountID, transfer.DestAccountID,
			transfer.Amount, transfer.Currency, transfer.TransferDate, transfer.Notes,
			transfer.SourceTxID, transfer.DestTxID, transfer.CreatedAt)
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.LogTransferAction("created", transfer.ID, userID, amount)
	return transfer, nil
}

// CreateFromPair submits one review-session transfer pair.
func (s *TransferService) CreateFromPair(ctx context.Context, userID string, pair models.TransferPair) (*models.InternalTransfer, error) {
	return s.Create(ctx, userID, models.CreateTransferRequest{
		SourceAccountID: pair.SourceAccountID,
		DestAccountID:   pair.DestinationAccountID,
		Amount:          pair.Amount,
		TransferDate:    pair.Date,
		Notes:           pair.Note,
	})
}

func (s *TransferService) insertMirror(ctx context.Context, tx *sql.Tx, id, userID, date, description string, amount float64, txType models.TxType, accountID string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions
			(id, user_id, date, period, description, amount, type, category, account_id, source, excluded_from_analysis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, $11)
	`, id, userID, date, models.Period(date), description, amount, txType,
		"Movimiento interno", accountID, models.SourceInternalTransfer, time.Now())
	return err
}

const transferColumns = `id, user_id, source_account_id, dest_account_id, amount, currency, transfer_date, notes, source_tx_id, dest_tx_id, created_at`

func scanTransfer(row interface{ Scan(...any) error }) (models.InternalTransfer, error) {
	var t models.InternalTransfer
	err := row.Scan(&t.ID, &t.UserID, &t.SourceAccountID, &t.DestAccountID, &t.Amount,
		&t.Currency, &t.TransferDate, &t.Notes, &t.SourceTxID, &t.DestTxID, &t.CreatedAt)
	return t, err
}

// List returns the user's transfers, newest first, with account names
// resolved for display.
func (s *TransferService) List(ctx context.Context, userID, from, to string) ([]models.InternalTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM internal_transfers WHERE user_id = $1`
	args := []any{userID}
	if from != "" {
		args = append(args, from)
		query += fmt.Sprintf(` AND transfer_date >= $%d`, len(args))
	}
	if to != "" {
		args = append(args, to)
		query += fmt.Sprintf(` AND transfer_date <= $%d`, len(args))
	}
	query += ` ORDER BY transfer_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []models.InternalTransfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range transfers {
		s.resolveNames(ctx, userID, &transfers[i])
	}
	return transfers, nil
}

func (s *TransferService) GetByID(ctx context.Context, id, userID string) (*models.InternalTransfer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+transferColumns+` FROM internal_transfers WHERE id = $1 AND user_id = $2`, id, userID)
	t, err := scanTransfer(row)
	if err == sql.ErrNoRows {
		return nil, ErrTransferNotFnd
	}
	if err != nil {
		return nil, err
	}
	s.resolveNames(ctx, userID, &t)
	return &t, nil
}

func (s *TransferService) resolveNames(ctx context.Context, userID string, t *models.InternalTransfer) {
	if src, err := s.accounts.GetByID(ctx, t.SourceAccountID, userID); err == nil {
		t.SourceName = src.Name
	}
	if dst, err := s.accounts.GetByID(ctx, t.DestAccountID, userID); err == nil {
		t.DestName = dst.Name
	}
}

// Delete removes a transfer and its mirror transactions. A mirror that
// another transfer still references is left alone — deleting it would
// destroy someone else's pair.
func (s *TransferService) Delete(ctx context.Context, id, userID string) (int, error) {
	transfer, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	err = utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		for _, txID := range []string{transfer.SourceTxID, transfer.DestTxID} {
			if txID == "" {
				continue
			}
			var otherRefs int
			if err := tx.QueryRowContext(ctx, `
				SELECT COUNT(*) FROM internal_transfers
				WHERE id != $1 AND (source_tx_id = $2 OR dest_tx_id = $2)
			`, id, txID).Scan(&otherRefs); err != nil {
				return err
			}
			if otherRefs > 0 {
				continue
			}
			result, err := tx.ExecContext(ctx,
				`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, txID, userID)
			if err != nil {
				return err
			}
			if n, _ := result.RowsAffected(); n > 0 {
				deleted++
			}
		}

		_, err := tx.ExecContext(ctx,
			`DELETE FROM internal_transfers WHERE id = $1 AND user_id = $2`, id, userID)
		return err
	})
	if err != nil {
		return 0, err
	}

	utils.LogTransferAction("deleted", id, userID, transfer.Amount)
	return deleted, nil
}
