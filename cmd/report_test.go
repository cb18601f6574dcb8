package cmd

import (
	"io"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonvc/ledgerdash/internal/ledger"
	"github.com/simonvc/ledgerdash/internal/viewmodel"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func reportSnapshot() ledger.Snapshot {
	d := decimal.NewFromInt
	return ledger.Snapshot{
		Accounts: []ledger.Account{
			{ID: 1, Code: "1001", Name: "Cash", Type: ledger.AccountTypeAsset, Balance: d(700)},
			{ID: 2, Code: "3001", Name: "Owner Capital", Type: ledger.AccountTypeEquity, Balance: d(-500)},
			{ID: 3, Code: "4001", Name: "Consulting Revenue", Type: ledger.AccountTypeRevenue, Balance: d(-200)},
		},
		Transactions: []ledger.Transaction{
			{ID: 1, Date: "2024-01-02", DebitAccount: 1, CreditAccount: 2, Amount: d(500), Status: ledger.StatusPosted},
			{ID: 2, Date: "2024-03-09", DebitAccount: 1, CreditAccount: 3, Amount: d(200), Status: ledger.StatusPosted},
		},
	}
}

func TestPrintBalanceSheet(t *testing.T) {
	p, err := ledger.ParsePeriod("", "2024-01-31")
	require.NoError(t, err)
	bs := viewmodel.BuildBalanceSheet(reportSnapshot(), p.To)

	out := captureStdout(t, func() { printBalanceSheet(&bs, p) })
	assert.Contains(t, out, "BALANCE SHEET")
	assert.Contains(t, out, "As of 2024-01-31")
	assert.Contains(t, out, "$500.00")
	assert.Contains(t, out, viewmodel.CurrentEarnings)
	assert.Contains(t, out, "[BALANCED]")
}

func TestPrintIncomeStatement(t *testing.T) {
	p, err := ledger.ParsePeriod("2024-03-01", "2024-03-31")
	require.NoError(t, err)
	is := viewmodel.BuildIncomeStatement(reportSnapshot(), p)

	out := captureStdout(t, func() { printIncomeStatement(&is, p) })
	assert.Contains(t, out, "2024-03-01 to 2024-03-31")
	assert.Contains(t, out, "Consulting Revenue")
	assert.Contains(t, out, "(no entries)")
	assert.Regexp(t, `Net Income\s+\$200\.00`, out)
}

func TestPrintTrialBalance(t *testing.T) {
	tb := viewmodel.BuildTrialBalance(reportSnapshot(), ledger.Period{})

	out := captureStdout(t, func() { printTrialBalance(&tb, ledger.Period{}) })
	assert.Contains(t, out, "All dates")
	assert.Regexp(t, `TOTALS\s+\$700\.00\s+\$700\.00`, out)
	assert.Contains(t, out, "[BALANCED]")
}

func TestReportCommand_RejectsUnknownType(t *testing.T) {
	err := reportCmd.RunE(reportCmd, []string{"cash-flow"})
	assert.ErrorContains(t, err, `unknown report "cash-flow"`)
}
