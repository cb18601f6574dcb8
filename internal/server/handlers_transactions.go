package server

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

type createTransactionRequest struct {
	Date          string                   `json:"date"`
	Description   string                   `json:"description"`
	Reference     string                   `json:"reference"`
	DebitAccount  int64                    `json:"debit_account"`
	CreditAccount int64                    `json:"credit_account"`
	Amount        decimal.Decimal          `json:"amount"`
	Status        ledger.TransactionStatus `json:"status"`
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.store.ListTransactions(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	id, err := s.store.CreateTransaction(r.Context(), ledger.TransactionInput{
		Date:          req.Date,
		Description:   req.Description,
		Reference:     req.Reference,
		DebitAccount:  req.DebitAccount,
		CreditAccount: req.CreditAccount,
		Amount:        req.Amount,
		Status:        req.Status,
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id, Message: "Transaction created successfully"})
}
