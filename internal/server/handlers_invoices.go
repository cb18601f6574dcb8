package server

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

type createInvoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number"`
	Client        string               `json:"client"`
	Date          string               `json:"date"`
	Amount        decimal.Decimal      `json:"amount"`
	Status        ledger.InvoiceStatus `json:"status"`
}

func (s *Server) listInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.store.ListInvoices(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (s *Server) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	id, err := s.store.CreateInvoice(r.Context(), ledger.InvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		Client:        req.Client,
		Date:          req.Date,
		Amount:        req.Amount,
		Status:        req.Status,
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id, Message: "Invoice created successfully"})
}
