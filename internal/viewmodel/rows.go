package viewmodel

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

// UnknownAccount is shown when a transaction references an account that is
// not in the snapshot.
const UnknownAccount = "Unknown"

const displayDateLayout = "Jan 2, 2006"

type TransactionRow struct {
	ID            int64
	Date          string
	DisplayDate   string
	Description   string
	DebitName     string
	CreditName    string
	Amount        decimal.Decimal
	DisplayAmount string
	// IsExpense is set when the debit account is an Expense account; such
	// rows are shown as outflows.
	IsExpense   bool
	Status      ledger.TransactionStatus
	StatusLabel string
}

func (r TransactionRow) Pending() bool {
	return r.Status == ledger.StatusPending
}

type AccountRow struct {
	ID             int64
	Code           string
	Name           string
	Type           ledger.AccountType
	NormalBalance  string
	Balance        decimal.Decimal
	DisplayBalance string
	Updated        string
}

type InvoiceCategory string

const (
	InvoiceCategoryPaid    InvoiceCategory = "paid"
	InvoiceCategoryOverdue InvoiceCategory = "overdue"
	InvoiceCategoryOther   InvoiceCategory = "other"
)

type InvoiceRow struct {
	ID            int64
	Number        string
	Client        string
	Date          string
	DisplayDate   string
	Amount        decimal.Decimal
	DisplayAmount string
	Status        ledger.InvoiceStatus
	StatusLabel   string
	Category      InvoiceCategory
}

// AccountOption is one entry of an account picker.
type AccountOption struct {
	ID    int64
	Label string
}

type TransactionSummary struct {
	Shown int
	Total int
}

// recentLimit is how many transactions the overview lists.
const recentLimit = 10

func displayDate(s string) string {
	if t, ok := ledger.ParseDate(s); ok {
		return t.Format(displayDateLayout)
	}
	return s
}

// BuildTransactionRows sorts transactions newest first. The sort is stable,
// so transactions on the same date keep their input order; unparseable
// dates sort last. Account references are resolved against the snapshot
// and fall back to UnknownAccount.
func BuildTransactionRows(snap ledger.Snapshot) []TransactionRow {
	idx := ledger.AccountIndex(snap.Accounts)

	type keyed struct {
		txn   ledger.Transaction
		valid bool
		unix  int64
	}
	items := make([]keyed, len(snap.Transactions))
	for i, t := range snap.Transactions {
		parsed, ok := ledger.ParseDate(t.Date)
		items[i] = keyed{txn: t, valid: ok, unix: parsed.Unix()}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.valid != b.valid {
			return a.valid
		}
		return a.unix > b.unix
	})

	rows := make([]TransactionRow, 0, len(items))
	for _, it := range items {
		t := it.txn
		debitName, creditName := UnknownAccount, UnknownAccount
		isExpense := false
		if a, ok := idx[t.DebitAccount]; ok {
			debitName = a.Name
			isExpense = a.Type == ledger.AccountTypeExpense
		}
		if a, ok := idx[t.CreditAccount]; ok {
			creditName = a.Name
		}

		display := ledger.FormatUSD(t.Amount)
		if isExpense {
			display = "-" + display
		}

		rows = append(rows, TransactionRow{
			ID:            t.ID,
			Date:          t.Date,
			DisplayDate:   displayDate(t.Date),
			Description:   t.Description,
			DebitName:     debitName,
			CreditName:    creditName,
			Amount:        t.Amount,
			DisplayAmount: display,
			IsExpense:     isExpense,
			Status:        t.Status,
			StatusLabel:   ledger.Capitalize(string(t.Status)),
		})
	}
	return rows
}

func BuildAccountRows(snap ledger.Snapshot) []AccountRow {
	rows := make([]AccountRow, 0, len(snap.Accounts))
	for _, a := range snap.Accounts {
		rows = append(rows, AccountRow{
			ID:             a.ID,
			Code:           a.Code,
			Name:           a.Name,
			Type:           a.Type,
			NormalBalance:  ledger.NormalBalance(a.Type),
			Balance:        a.Balance,
			DisplayBalance: ledger.FormatUSD(a.Balance),
			Updated:        displayDate(a.UpdatedAt),
		})
	}
	return rows
}

func BuildInvoiceRows(snap ledger.Snapshot) []InvoiceRow {
	rows := make([]InvoiceRow, 0, len(snap.Invoices))
	for _, inv := range snap.Invoices {
		rows = append(rows, InvoiceRow{
			ID:            inv.ID,
			Number:        inv.InvoiceNumber,
			Client:        inv.Client,
			Date:          inv.Date,
			DisplayDate:   displayDate(inv.Date),
			Amount:        inv.Amount,
			DisplayAmount: ledger.FormatUSD(inv.Amount),
			Status:        inv.Status,
			StatusLabel:   ledger.Capitalize(string(inv.Status)),
			Category:      invoiceCategory(inv.Status),
		})
	}
	return rows
}

func invoiceCategory(s ledger.InvoiceStatus) InvoiceCategory {
	switch s {
	case ledger.InvoicePaid:
		return InvoiceCategoryPaid
	case ledger.InvoiceOverdue:
		return InvoiceCategoryOverdue
	default:
		return InvoiceCategoryOther
	}
}

// BuildAccountOptions lists accounts as "Name (Type)" for pickers.
func BuildAccountOptions(snap ledger.Snapshot) []AccountOption {
	opts := make([]AccountOption, 0, len(snap.Accounts))
	for _, a := range snap.Accounts {
		opts = append(opts, AccountOption{ID: a.ID, Label: a.Name + " (" + string(a.Type) + ")"})
	}
	return opts
}

// SummarizeTransactions returns how many transactions the overview shows
// out of the total.
func SummarizeTransactions(snap ledger.Snapshot) TransactionSummary {
	n := len(snap.Transactions)
	return TransactionSummary{Shown: min(recentLimit, n), Total: n}
}
