package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusPosted  TransactionStatus = "posted"
)

// DateLayout is the wire format of transaction and invoice dates.
const DateLayout = "2006-01-02"

type Transaction struct {
	ID                int64             `json:"id"`
	Date              string            `json:"date"`
	Description       string            `json:"description"`
	Reference         string            `json:"reference,omitempty"`
	DebitAccount      int64             `json:"debit_account"`
	CreditAccount     int64             `json:"credit_account"`
	Amount            decimal.Decimal   `json:"amount"`
	Status            TransactionStatus `json:"status"`
	DebitAccountName  string            `json:"debit_account_name,omitempty"`
	CreditAccountName string            `json:"credit_account_name,omitempty"`
}

type TransactionInput struct {
	Date          string
	Description   string
	Reference     string
	DebitAccount  int64
	CreditAccount int64
	Amount        decimal.Decimal
	Status        TransactionStatus
}

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate parses the date formats the backend is known to emit.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Capitalize upper-cases the first letter of a status string for display.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
