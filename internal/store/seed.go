package store

import (
	"context"
	"fmt"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

// DefaultAccounts is the starter chart created by Seed.
var DefaultAccounts = []ledger.AccountInput{
	{Code: "1001", Name: "Cash", Type: ledger.AccountTypeAsset},
	{Code: "1002", Name: "Bank Account", Type: ledger.AccountTypeAsset},
	{Code: "1100", Name: "Accounts Receivable", Type: ledger.AccountTypeAsset},
	{Code: "6001", Name: "Office Supplies", Type: ledger.AccountTypeExpense},
	{Code: "6002", Name: "Rent Expense", Type: ledger.AccountTypeExpense},
	{Code: "4001", Name: "Service Revenue", Type: ledger.AccountTypeRevenue},
	{Code: "4002", Name: "Sales Revenue", Type: ledger.AccountTypeRevenue},
}

// Seed creates DefaultAccounts when the store has no accounts yet and
// returns how many were created.
func (s *Store) Seed(ctx context.Context) (int, error) {
	var count int
	if err := s.reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for i, a := range DefaultAccounts {
		if _, err := s.CreateAccount(ctx, a); err != nil {
			return i, fmt.Errorf("seed account %s: %w", a.Code, err)
		}
	}
	return len(DefaultAccounts), nil
}
