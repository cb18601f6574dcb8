package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

func TestParseReportType(t *testing.T) {
	got, ok := ledger.ParseReportType("balance-sheet")
	assert.True(t, ok)
	assert.Equal(t, ledger.ReportBalanceSheet, got)

	got, ok = ledger.ParseReportType(" Trial_Balance ")
	assert.True(t, ok)
	assert.Equal(t, ledger.ReportTrialBalance, got)

	_, ok = ledger.ParseReportType("cash_flow")
	assert.False(t, ok)
}

func TestParsePeriod(t *testing.T) {
	p, err := ledger.ParsePeriod("2024-01-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 to 2024-03-31", p.Label())
	assert.True(t, p.Contains(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))

	open, err := ledger.ParsePeriod("", "")
	require.NoError(t, err)
	assert.False(t, open.Bounded())
	assert.Equal(t, "All dates", open.Label())
	assert.True(t, open.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))

	through, err := ledger.ParsePeriod("", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, "Through 2024-06-30", through.Label())
	assert.Equal(t, "", through.Start())
	assert.Equal(t, "2024-06-30", through.End())
}

func TestParsePeriod_Rejections(t *testing.T) {
	tests := []struct {
		name, start, end, reason string
	}{
		{"bad start", "01/01/2024", "", "Dates must be in YYYY-MM-DD format"},
		{"bad end", "", "2024-13-01", "Dates must be in YYYY-MM-DD format"},
		{"reversed", "2024-02-01", "2024-01-01", "Start date must not be after end date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.ParsePeriod(tt.start, tt.end)
			var pf *ledger.PreconditionFailedError
			require.True(t, errors.As(err, &pf))
			assert.Equal(t, tt.reason, pf.Reason)
		})
	}
}

func TestValidateReportRequest(t *testing.T) {
	p, err := ledger.ValidateReportRequest(ledger.ReportRequest{
		Type: ledger.ReportIncomeStatement, StartDate: "2024-01-01", EndDate: "2024-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", p.Start())

	_, err = ledger.ValidateReportRequest(ledger.ReportRequest{Type: "cash_flow", StartDate: "2024-01-01", EndDate: "2024-12-31"})
	assert.ErrorIs(t, err, ledger.ErrPreconditionFailed)
	assert.EqualError(t, err, "Invalid report type. Must be one of balance_sheet, income_statement, trial_balance")
}

func TestFormatAccounting(t *testing.T) {
	assert.Equal(t, "($1,200.00)", ledger.FormatAccounting(decimal.NewFromInt(-1200)))
	assert.Equal(t, "$5.50", ledger.FormatAccounting(decimal.RequireFromString("5.5")))
}
