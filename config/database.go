package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			bank VARCHAR(50) DEFAULT '',
			currency VARCHAR(10) DEFAULT 'PEN',
			active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id VARCHAR(255) NOT NULL,
			date VARCHAR(10) NOT NULL,
			period VARCHAR(7) NOT NULL,
			description TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			type VARCHAR(30) NOT NULL,
			category VARCHAR(100) NOT NULL,
			account_id UUID REFERENCES accounts(id),
			source VARCHAR(30) DEFAULT 'manual',
			excluded_from_analysis BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS internal_transfers (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id VARCHAR(255) NOT NULL,
			source_account_id UUID REFERENCES accounts(id),
			dest_account_id UUID REFERENCES accounts(id),
			amount DOUBLE PRECISION NOT NULL,
			currency VARCHAR(10) DEFAULT 'PEN',
			transfer_date VARCHAR(10) NOT NULL,
			notes TEXT DEFAULT '',
			source_tx_id UUID,
			dest_tx_id UUID,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS classification_rules (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id VARCHAR(255) NOT NULL,
			label VARCHAR(255) NOT NULL,
			pattern TEXT NOT NULL,
			type VARCHAR(30) NOT NULL,
			category VARCHAR(100) NOT NULL,
			is_internal BOOLEAN DEFAULT FALSE,
			position INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		// Cache of external-classifier answers so the same label never
		// pays for a second AI call.
		`CREATE TABLE IF NOT EXISTS label_mappings (
			normalized_label VARCHAR(255) PRIMARY KEY,
			type VARCHAR(30) NOT NULL,
			category VARCHAR(100) NOT NULL,
			source VARCHAR(20) DEFAULT 'AI',
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_transactions_user_period ON transactions(user_id, period)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account_id ON transactions(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transfers_user_id ON internal_transfers(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rules_user_position ON classification_rules(user_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_user_id ON accounts(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
