package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrFetchFailed        = errors.New("fetch failed")
	ErrValidationRejected = errors.New("rejected by server")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrPreconditionFailed = errors.New("precondition failed")

	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidAccountCode   = errors.New("account code must be a number between 1 and 9999")
	ErrSameAccount          = errors.New("debit and credit accounts cannot be the same")
	ErrNonPositiveAmount    = errors.New("amount must be greater than 0")
	ErrInvalidDate          = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrMissingFields        = errors.New("missing required fields")
	ErrDuplicateInvoice     = errors.New("invoice number already exists")
	ErrDuplicateAccountCode = errors.New("account code already exists")
)

// Resource names a backend collection.
type Resource string

const (
	ResourceAccounts     Resource = "accounts"
	ResourceTransactions Resource = "transactions"
	ResourceInvoices     Resource = "invoices"
)

// FetchFailedError is returned when a list request gets a non-2xx status.
type FetchFailedError struct {
	Resource   Resource
	StatusCode int
}

func (e *FetchFailedError) Error() string {
	return fmt.Sprintf("failed to load %s: server responded with status %d", e.Resource, e.StatusCode)
}

func (e *FetchFailedError) Unwrap() error { return ErrFetchFailed }

// ValidationRejectedError is returned when a create request gets a non-2xx
// status. ServerMessage is the body's error field, or a generic message
// derived from the status code.
type ValidationRejectedError struct {
	Resource      Resource
	StatusCode    int
	ServerMessage string
}

func (e *ValidationRejectedError) Error() string {
	return fmt.Sprintf("failed to create %s: %s", singular(e.Resource), e.ServerMessage)
}

func (e *ValidationRejectedError) Unwrap() error { return ErrValidationRejected }

// MalformedResponseError is returned when a response body does not have the
// expected shape.
type MalformedResponseError struct {
	Resource Resource
	Err      error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid response format for %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("invalid response format for %s", e.Resource)
}

func (e *MalformedResponseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedResponse, e.Err}
	}
	return []error{ErrMalformedResponse}
}

// PreconditionFailedError is returned by the form validators before any
// request is made.
type PreconditionFailedError struct {
	Reason string
}

func (e *PreconditionFailedError) Error() string { return e.Reason }

func (e *PreconditionFailedError) Unwrap() error { return ErrPreconditionFailed }

func singular(r Resource) string {
	switch r {
	case ResourceAccounts:
		return "account"
	case ResourceTransactions:
		return "transaction"
	case ResourceInvoices:
		return "invoice"
	default:
		return string(r)
	}
}
