package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
}

type createdResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeStoreError maps a store error to its status and client-facing message.
// Unexpected errors are logged and reported without internals.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapError(err)
	if status == http.StatusInternalServerError {
		s.log.Error("store failure", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, errorMessage(err))
}

func mapError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrMissingFields),
		errors.Is(err, ledger.ErrInvalidAccountType),
		errors.Is(err, ledger.ErrInvalidAccountCode),
		errors.Is(err, ledger.ErrSameAccount),
		errors.Is(err, ledger.ErrNonPositiveAmount),
		errors.Is(err, ledger.ErrInvalidDate),
		errors.Is(err, ledger.ErrInvalidStatus),
		errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrDuplicateInvoice),
		errors.Is(err, ledger.ErrDuplicateAccountCode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errorMessages = map[error]string{
	ledger.ErrMissingFields:        "All fields are required",
	ledger.ErrInvalidAccountType:   "Invalid account type. Must be one of Asset, Liability, Equity, Revenue, Expense",
	ledger.ErrInvalidAccountCode:   "Account code must be between 1 and 9999",
	ledger.ErrSameAccount:          "Debit and credit accounts cannot be the same",
	ledger.ErrNonPositiveAmount:    "Amount must be greater than 0",
	ledger.ErrInvalidDate:          "Date must be in YYYY-MM-DD format",
	ledger.ErrAccountNotFound:      "Invalid debit or credit account",
	ledger.ErrDuplicateInvoice:     "Invoice number already exists",
	ledger.ErrDuplicateAccountCode: "Account code already exists",
	ledger.ErrInvalidStatus:        "Invalid status",
}

func errorMessage(err error) string {
	for sentinel, msg := range errorMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return err.Error()
}
