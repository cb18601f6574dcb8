package ledger

import "strings"

const reasonAllFieldsRequired = "All fields are required"

func preconditionFailed(reason string) error {
	return &PreconditionFailedError{Reason: reason}
}

// ValidateTransaction gates a create-transaction submission. It never
// performs I/O and returns a *PreconditionFailedError on rejection.
func ValidateTransaction(in TransactionInput) error {
	if in.DebitAccount == in.CreditAccount {
		return preconditionFailed("Debit and credit accounts cannot be the same")
	}
	if !in.Amount.IsPositive() {
		return preconditionFailed("Amount must be greater than 0")
	}
	if blank(in.Date) || blank(in.Description) || in.DebitAccount == 0 || in.CreditAccount == 0 {
		return preconditionFailed(reasonAllFieldsRequired)
	}
	return nil
}

// ValidateAccount gates a create-account submission. Balance must be
// present but may be zero.
func ValidateAccount(in AccountInput) error {
	if blank(in.Name) || in.Type == "" || in.Balance == nil {
		return preconditionFailed(reasonAllFieldsRequired)
	}
	if !ValidType(in.Type, DashboardTypes) {
		return preconditionFailed("Account type must be one of Asset, Liability, Revenue, Expense")
	}
	return nil
}

// ValidateInvoice gates a create-invoice submission.
func ValidateInvoice(in InvoiceInput) error {
	if blank(in.InvoiceNumber) || blank(in.Client) || blank(in.Date) || in.Amount.IsZero() || in.Status == "" {
		return preconditionFailed(reasonAllFieldsRequired)
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
