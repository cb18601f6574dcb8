package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

type createAccountRequest struct {
	Name        string             `json:"name"`
	Code        json.Number        `json:"code"`
	Type        ledger.AccountType `json:"type"`
	Description string             `json:"description"`
	Balance     *decimal.Decimal   `json:"balance"`
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.ListAccounts(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	id, err := s.store.CreateAccount(r.Context(), ledger.AccountInput{
		Name:        req.Name,
		Code:        req.Code.String(),
		Type:        req.Type,
		Description: req.Description,
		Balance:     req.Balance,
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id, Message: "Account created successfully"})
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid account id")
		return
	}
	acct, err := s.store.GetAccount(r.Context(), id)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		writeError(w, http.StatusNotFound, "Account not found")
		return
	}
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}
