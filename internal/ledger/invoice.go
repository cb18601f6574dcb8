package ledger

import "github.com/shopspring/decimal"

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

var InvoiceStatuses = []InvoiceStatus{InvoicePending, InvoicePaid, InvoiceOverdue}

type Invoice struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	Client        string          `json:"client"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Status        InvoiceStatus   `json:"status"`
}

type InvoiceInput struct {
	InvoiceNumber string
	Client        string
	Date          string
	Amount        decimal.Decimal
	Status        InvoiceStatus
}

// ValidInvoiceStatus reports whether s is a status the backend accepts.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	for _, v := range InvoiceStatuses {
		if v == s {
			return true
		}
	}
	return false
}
