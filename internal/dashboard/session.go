package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/simonvc/ledgerdash/internal/ledger"
	"github.com/simonvc/ledgerdash/internal/viewmodel"
)

// ErrSubmitInFlight is returned when a submit is attempted while another one
// has not finished. Nothing is sent.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// ErrRefreshAfterCreate marks a submit whose record was created but whose
// follow-up refresh failed. The record exists; resubmitting would duplicate it.
var ErrRefreshAfterCreate = errors.New("created, but reloading the dashboard failed")

// RefreshAfterCreateError carries the refresh failure that followed a
// successful create.
type RefreshAfterCreateError struct {
	Err error
}

func (e *RefreshAfterCreateError) Error() string {
	return ErrRefreshAfterCreate.Error() + ": " + e.Err.Error()
}

func (e *RefreshAfterCreateError) Unwrap() []error {
	return []error{ErrRefreshAfterCreate, e.Err}
}

// Ledger is the backend surface the session needs. *client.Client
// implements it.
type Ledger interface {
	FetchSnapshot(ctx context.Context) (*ledger.Snapshot, error)
	CreateAccount(ctx context.Context, in ledger.AccountInput) (*ledger.Account, error)
	CreateTransaction(ctx context.Context, in ledger.TransactionInput) (*ledger.Transaction, error)
	CreateInvoice(ctx context.Context, in ledger.InvoiceInput) (*ledger.Invoice, error)
}

// Session owns the current snapshot. Renderers read it through the
// view-model accessors; only Refresh replaces it.
type Session struct {
	ledger       Ledger
	periodFactor float64
	log          *slog.Logger

	mu   sync.RWMutex
	snap ledger.Snapshot

	submitting atomic.Bool
}

type Option func(*Session)

func WithPeriodFactor(f float64) Option {
	return func(s *Session) { s.periodFactor = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

func NewSession(l Ledger, opts ...Option) *Session {
	s := &Session{
		ledger:       l,
		periodFactor: viewmodel.DefaultPeriodFactor,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "dashboard")
	return s
}

// Refresh fetches a new snapshot and swaps it in. On failure the previous
// snapshot is kept.
func (s *Session) Refresh(ctx context.Context) error {
	snap, err := s.ledger.FetchSnapshot(ctx)
	if err != nil {
		s.log.Error("refresh failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.snap = *snap
	s.mu.Unlock()

	s.log.Info("snapshot refreshed",
		"accounts", len(snap.Accounts),
		"transactions", len(snap.Transactions),
		"invoices", len(snap.Invoices),
	)
	return nil
}

func (s *Session) SubmitAccount(ctx context.Context, in ledger.AccountInput) (*ledger.Account, error) {
	return submit(s, ctx, func() error { return ledger.ValidateAccount(in) },
		func(ctx context.Context) (*ledger.Account, error) { return s.ledger.CreateAccount(ctx, in) })
}

func (s *Session) SubmitTransaction(ctx context.Context, in ledger.TransactionInput) (*ledger.Transaction, error) {
	if in.Status == "" {
		in.Status = ledger.StatusPending
	}
	return submit(s, ctx, func() error { return ledger.ValidateTransaction(in) },
		func(ctx context.Context) (*ledger.Transaction, error) { return s.ledger.CreateTransaction(ctx, in) })
}

func (s *Session) SubmitInvoice(ctx context.Context, in ledger.InvoiceInput) (*ledger.Invoice, error) {
	return submit(s, ctx, func() error { return ledger.ValidateInvoice(in) },
		func(ctx context.Context) (*ledger.Invoice, error) { return s.ledger.CreateInvoice(ctx, in) })
}

// submit runs validate, create, refresh. Only one submit runs at a time; a
// concurrent call returns ErrSubmitInFlight without doing anything. When the
// create succeeds but the refresh fails, the created record is returned
// together with a *RefreshAfterCreateError.
func submit[T any](s *Session, ctx context.Context, validate func() error, create func(context.Context) (*T, error)) (*T, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.submitting.Store(false)

	if err := validate(); err != nil {
		s.log.Info("submission rejected before sending", "reason", err)
		return nil, err
	}

	created, err := create(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		return created, &RefreshAfterCreateError{Err: err}
	}
	return created, nil
}

// Submitting reports whether a submit is in flight.
func (s *Session) Submitting() bool {
	return s.submitting.Load()
}

// Snapshot returns the current snapshot. Callers must not modify the
// slices it holds.
func (s *Session) Snapshot() ledger.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Session) Stats() [4]viewmodel.StatCard {
	return viewmodel.ComputeStats(s.Snapshot(), s.periodFactor)
}

func (s *Session) Utilization() []viewmodel.UtilizationRow {
	return viewmodel.ComputeAccountUtilization(s.Snapshot())
}

func (s *Session) TransactionRows() []viewmodel.TransactionRow {
	return viewmodel.BuildTransactionRows(s.Snapshot())
}

func (s *Session) AccountRows() []viewmodel.AccountRow {
	return viewmodel.BuildAccountRows(s.Snapshot())
}

func (s *Session) InvoiceRows() []viewmodel.InvoiceRow {
	return viewmodel.BuildInvoiceRows(s.Snapshot())
}

func (s *Session) AccountOptions() []viewmodel.AccountOption {
	return viewmodel.BuildAccountOptions(s.Snapshot())
}

func (s *Session) TransactionSummary() viewmodel.TransactionSummary {
	return viewmodel.SummarizeTransactions(s.Snapshot())
}

// Report builds the report of type t over p from the current snapshot.
func (s *Session) Report(t ledger.ReportType, p ledger.Period) viewmodel.Report {
	return viewmodel.BuildReport(s.Snapshot(), t, p)
}
