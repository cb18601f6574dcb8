package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/simonvc/ledgerdash/internal/ledger"
	"github.com/simonvc/ledgerdash/internal/viewmodel"
)

func (s *Server) generateReport(w http.ResponseWriter, r *http.Request) {
	var req ledger.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Type == "" || req.StartDate == "" || req.EndDate == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: report_type, start_date, end_date")
		return
	}
	period, err := ledger.ValidateReportRequest(req)
	if err != nil {
		var pf *ledger.PreconditionFailedError
		if errors.As(err, &pf) {
			writeError(w, http.StatusBadRequest, pf.Reason)
			return
		}
		s.writeStoreError(w, r, err)
		return
	}

	accounts, err := s.store.ListAccounts(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	txns, err := s.store.ListTransactions(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	snap := ledger.Snapshot{Accounts: accounts, Transactions: txns, FetchedAt: time.Now().UTC()}
	writeJSON(w, http.StatusOK, viewmodel.BuildReport(snap, req.Type, period))
}
