package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

// CreateTransaction validates and records a transaction. A posted
// transaction adds the amount to the debit account and subtracts it from the
// credit account in the same SQL transaction; a pending one moves nothing.
// An empty status means posted.
func (s *Store) CreateTransaction(ctx context.Context, in ledger.TransactionInput) (int64, error) {
	if in.Status == "" {
		in.Status = ledger.StatusPosted
	}
	if err := validateTransaction(in); err != nil {
		return 0, err
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	debitBal, err := balanceOf(ctx, tx, in.DebitAccount)
	if err != nil {
		return 0, err
	}
	creditBal, err := balanceOf(ctx, tx, in.CreditAccount)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (date, description, reference, debit_account, credit_account, amount, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Date, strings.TrimSpace(in.Description), strings.TrimSpace(in.Reference),
		in.DebitAccount, in.CreditAccount, in.Amount.String(), string(in.Status),
	)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}

	if in.Status == ledger.StatusPosted {
		if err := setBalance(ctx, tx, in.DebitAccount, debitBal.Add(in.Amount)); err != nil {
			return 0, err
		}
		if err := setBalance(ctx, tx, in.CreditAccount, creditBal.Sub(in.Amount)); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func validateTransaction(in ledger.TransactionInput) error {
	if strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Description) == "" ||
		in.DebitAccount == 0 || in.CreditAccount == 0 {
		return ledger.ErrMissingFields
	}
	if in.DebitAccount == in.CreditAccount {
		return ledger.ErrSameAccount
	}
	if !in.Amount.IsPositive() {
		return ledger.ErrNonPositiveAmount
	}
	if _, err := time.Parse(ledger.DateLayout, in.Date); err != nil {
		return ledger.ErrInvalidDate
	}
	if in.Status != ledger.StatusPending && in.Status != ledger.StatusPosted {
		return ledger.ErrInvalidStatus
	}
	return nil
}

func balanceOf(ctx context.Context, tx *sql.Tx, id int64) (decimal.Decimal, error) {
	var bal decimal.Decimal
	err := tx.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE id = ?`, id).Scan(&bal)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("account %d: %w", id, ledger.ErrAccountNotFound)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("read balance: %w", err)
	}
	return bal, nil
}

func setBalance(ctx context.Context, tx *sql.Tx, id int64, bal decimal.Decimal) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now') WHERE id = ?`,
		bal.String(), id)
	if err != nil {
		return fmt.Errorf("update balance of account %d: %w", id, err)
	}
	return nil
}

// ListTransactions returns transactions newest first, with the names of the
// accounts they reference.
func (s *Store) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	rows, err := s.reader.QueryContext(ctx, `
		SELECT t.id, t.date, t.description, t.reference, t.debit_account, t.credit_account,
		       t.amount, t.status, COALESCE(d.name, ''), COALESCE(c.name, '')
		FROM transactions t
		LEFT JOIN accounts d ON d.id = t.debit_account
		LEFT JOIN accounts c ON c.id = t.credit_account
		ORDER BY t.date DESC, t.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txns := []ledger.Transaction{}
	for rows.Next() {
		var t ledger.Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &t.Reference, &t.DebitAccount,
			&t.CreditAccount, &t.Amount, &t.Status, &t.DebitAccountName, &t.CreditAccountName); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
