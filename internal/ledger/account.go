package ledger

import (
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeEquity    AccountType = "Equity"
	AccountTypeRevenue   AccountType = "Revenue"
	AccountTypeExpense   AccountType = "Expense"
)

// DashboardTypes are the account types the dashboard lets users create.
var DashboardTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// BackendTypes are the account types the backend accepts.
var BackendTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

type Account struct {
	ID              int64            `json:"id"`
	Code            string           `json:"code,omitempty"`
	Name            string           `json:"name"`
	Type            AccountType      `json:"type"`
	Balance         decimal.Decimal  `json:"balance"`
	PreviousBalance *decimal.Decimal `json:"previous_balance,omitempty"`
	Description     string           `json:"description,omitempty"`
	UpdatedAt       string           `json:"updated_at,omitempty"`
}

// AccountInput carries the fields of the create-account form. Balance is a
// pointer because zero is a legitimate opening balance.
type AccountInput struct {
	Name        string
	Code        string
	Type        AccountType
	Description string
	Balance     *decimal.Decimal
}

// ValidType reports whether t is one of the given account types.
func ValidType(t AccountType, allowed []AccountType) bool {
	for _, a := range allowed {
		if a == t {
			return true
		}
	}
	return false
}

// NormalBalance returns "Debit" or "Credit" for the account type.
// Assets and Expenses are debit-normal; everything else is credit-normal.
func NormalBalance(t AccountType) string {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return "Debit"
	default:
		return "Credit"
	}
}

// AccountIndex maps account ids to accounts for reference lookups.
func AccountIndex(accounts []Account) map[int64]Account {
	idx := make(map[int64]Account, len(accounts))
	for _, a := range accounts {
		idx[a.ID] = a
	}
	return idx
}
