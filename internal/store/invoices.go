package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

func (s *Store) CreateInvoice(ctx context.Context, in ledger.InvoiceInput) (int64, error) {
	number := strings.TrimSpace(in.InvoiceNumber)
	client := strings.TrimSpace(in.Client)
	if number == "" || client == "" || strings.TrimSpace(in.Date) == "" || in.Status == "" {
		return 0, ledger.ErrMissingFields
	}
	if _, err := time.Parse(ledger.DateLayout, in.Date); err != nil {
		return 0, ledger.ErrInvalidDate
	}
	if !in.Amount.IsPositive() {
		return 0, ledger.ErrNonPositiveAmount
	}
	if !ledger.ValidInvoiceStatus(in.Status) {
		return 0, ledger.ErrInvalidStatus
	}

	res, err := s.writer.ExecContext(ctx,
		`INSERT INTO invoices (invoice_number, client, date, amount, status) VALUES (?, ?, ?, ?, ?)`,
		number, client, in.Date, in.Amount.String(), string(in.Status),
	)
	if isUniqueViolation(err) {
		return 0, ledger.ErrDuplicateInvoice
	}
	if err != nil {
		return 0, fmt.Errorf("insert invoice: %w", err)
	}
	return res.LastInsertId()
}

// ListInvoices returns invoices newest first.
func (s *Store) ListInvoices(ctx context.Context) ([]ledger.Invoice, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, invoice_number, client, date, amount, status FROM invoices ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	invoices := []ledger.Invoice{}
	for rows.Next() {
		var inv ledger.Invoice
		if err := rows.Scan(&inv.ID, &inv.InvoiceNumber, &inv.Client, &inv.Date, &inv.Amount, &inv.Status); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
