package store

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order; entry i brings the schema to version i+1.
var migrations = []func(context.Context, *sql.Tx) error{
	migrateV1,
}

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var current int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for v := current; v < len(migrations); v++ {
		if err := migrations[v](ctx, tx); err != nil {
			return fmt.Errorf("migration v%d: %w", v+1, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, v+1); err != nil {
			return fmt.Errorf("record v%d: %w", v+1, err)
		}
	}
	return tx.Commit()
}

// Money columns are TEXT holding decimal strings so no precision is lost.
func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			code             TEXT UNIQUE,
			name             TEXT NOT NULL,
			type             TEXT NOT NULL CHECK (type IN ('Asset','Liability','Equity','Revenue','Expense')),
			description      TEXT NOT NULL DEFAULT '',
			balance          TEXT NOT NULL DEFAULT '0',
			previous_balance TEXT,
			created_at       TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
			updated_at       TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_type ON accounts(type)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			date           TEXT NOT NULL,
			description    TEXT NOT NULL,
			reference      TEXT NOT NULL DEFAULT '',
			debit_account  INTEGER NOT NULL REFERENCES accounts(id),
			credit_account INTEGER NOT NULL REFERENCES accounts(id),
			amount         TEXT NOT NULL,
			status         TEXT NOT NULL CHECK (status IN ('pending','posted')),
			created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
			CHECK (debit_account != credit_account)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,

		`CREATE TABLE IF NOT EXISTS invoices (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			invoice_number TEXT NOT NULL UNIQUE,
			client         TEXT NOT NULL,
			date           TEXT NOT NULL,
			amount         TEXT NOT NULL,
			status         TEXT NOT NULL CHECK (status IN ('pending','paid','overdue')),
			created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invoices_date ON invoices(date)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %.60q: %w", stmt, err)
		}
	}
	return nil
}
