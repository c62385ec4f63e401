package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/FinanzasVH/finanzas-api/models"

	"github.com/google/uuid"
)

type AccountService struct {
	db *sql.DB
}

func NewAccountService(db *sql.DB) *AccountService {
	return &AccountService{db: db}
}

// GetUserAccounts lists the user's accounts, active first.
func (s *AccountService) GetUserAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	query := `
		SELECT id, user_id, name, bank, currency, active, created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY active DESC, created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Bank, &a.Currency, &a.Active, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// GetByID fetches one account, scoped to the user.
func (s *AccountService) GetByID(ctx context.Context, id, userID string) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, bank, currency, active, created_at
		FROM accounts
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&a.ID, &a.UserID, &a.Name, &a.Bank, &a.Currency, &a.Active, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AccountService) Create(ctx context.Context, userID string, req models.CreateAccountRequest) (*models.Account, error) {
	currency := req.Currency
	if currency == "" {
		currency = "PEN"
	}
	account := &models.Account{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      req.Name,
		Bank:      req.Bank,
		Currency:  currency,
		Active:    true,
		CreatedAt: time.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, name, bank, currency, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, account.ID, account.UserID, account.Name, account.Bank, account.Currency, account.Active, account.CreatedAt)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) Update(ctx context.Context, id, userID string, req models.UpdateAccountRequest) (*models.Account, error) {
	account, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		account.Name = req.Name
	}
	if req.Bank != "" {
		account.Bank = req.Bank
	}
	if req.Active != nil {
		account.Active = *req.Active
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE accounts SET name = $1, bank = $2, active = $3
		WHERE id = $4 AND user_id = $5
	`, account.Name, account.Bank, account.Active, id, userID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// RequireActive returns the account if it exists, belongs to the user
// and is active; statement imports must target an active account.
func (s *AccountService) RequireActive(ctx context.Context, id, userID string) (*models.Account, error) {
	account, err := s.GetByID(ctx, id, userID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, fmt.Errorf("account %s is inactive", account.Name)
	}
	return account, nil
}
