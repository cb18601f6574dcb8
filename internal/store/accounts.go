package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

const accountColumns = `id, code, name, type, description, balance, previous_balance, updated_at`

// CreateAccount validates and inserts an account and returns its id. A
// missing opening balance is stored as zero.
func (s *Store) CreateAccount(ctx context.Context, in ledger.AccountInput) (int64, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Type == "" {
		return 0, ledger.ErrMissingFields
	}
	if !ledger.ValidType(in.Type, ledger.BackendTypes) {
		return 0, ledger.ErrInvalidAccountType
	}

	var code sql.NullString
	if c := strings.TrimSpace(in.Code); c != "" {
		n, err := strconv.Atoi(c)
		if err != nil || n < 1 || n > 9999 {
			return 0, ledger.ErrInvalidAccountCode
		}
		code = sql.NullString{String: strconv.Itoa(n), Valid: true}
	}

	balance := decimal.Zero
	if in.Balance != nil {
		balance = *in.Balance
	}

	res, err := s.writer.ExecContext(ctx,
		`INSERT INTO accounts (code, name, type, description, balance) VALUES (?, ?, ?, ?, ?)`,
		code, name, string(in.Type), strings.TrimSpace(in.Description), balance.String(),
	)
	if isUniqueViolation(err) {
		return 0, ledger.ErrDuplicateAccountCode
	}
	if err != nil {
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*ledger.Account, error) {
	row := s.reader.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	acct, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return acct, nil
}

// ListAccounts returns all accounts ordered by code; accounts without a
// code come last.
func (s *Store) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY code IS NULL, CAST(code AS INTEGER), id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []ledger.Account{}
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, *acct)
	}
	return accounts, rows.Err()
}

// ClosePeriod snapshots every account's current balance as its previous
// balance, so the dashboard's change figures compare against this point.
func (s *Store) ClosePeriod(ctx context.Context) (int64, error) {
	res, err := s.writer.ExecContext(ctx,
		`UPDATE accounts SET previous_balance = balance, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')`)
	if err != nil {
		return 0, fmt.Errorf("close period: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*ledger.Account, error) {
	var acct ledger.Account
	var code sql.NullString
	var prev decimal.NullDecimal
	if err := row.Scan(&acct.ID, &code, &acct.Name, &acct.Type, &acct.Description,
		&acct.Balance, &prev, &acct.UpdatedAt); err != nil {
		return nil, err
	}
	acct.Code = code.String
	if prev.Valid {
		p := prev.Decimal
		acct.PreviousBalance = &p
	}
	return &acct, nil
}
