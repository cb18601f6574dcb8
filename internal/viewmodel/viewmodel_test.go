package viewmodel_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonvc/ledgerdash/internal/ledger"
	"github.com/simonvc/ledgerdash/internal/viewmodel"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func exampleSnapshot() ledger.Snapshot {
	return ledger.Snapshot{
		Accounts: []ledger.Account{
			{ID: 1, Name: "Cash", Type: ledger.AccountTypeAsset, Balance: dec("500")},
			{ID: 2, Name: "Rent Expense", Type: ledger.AccountTypeExpense, Balance: dec("120")},
		},
		Transactions: []ledger.Transaction{
			{ID: 1, Date: "2024-01-01", Description: "January rent", DebitAccount: 2, CreditAccount: 1, Amount: dec("120"), Status: ledger.StatusPosted},
		},
	}
}

func TestComputeStats_Example(t *testing.T) {
	cards := viewmodel.ComputeStats(exampleSnapshot(), viewmodel.DefaultPeriodFactor)

	assert.True(t, cards[viewmodel.CardTotalBalance].Value.Equal(dec("620")))
	assert.True(t, cards[viewmodel.CardExpenses].Value.Equal(dec("120")))
	assert.True(t, cards[viewmodel.CardIncome].Value.IsZero())
	assert.True(t, cards[viewmodel.CardPending].Value.IsZero())

	// 620 against an extrapolated 558.
	assert.Equal(t, "11.1", cards[viewmodel.CardTotalBalance].ChangePct.StringFixed(1))
	assert.Equal(t, viewmodel.TrendUp, cards[viewmodel.CardTotalBalance].Trend)
	assert.Equal(t, "$620.00", cards[viewmodel.CardTotalBalance].DisplayValue())
	assert.Equal(t, "11.1% from last month", cards[viewmodel.CardTotalBalance].Caption())
}

func TestComputeStats_PreviousBalanceWins(t *testing.T) {
	snap := ledger.Snapshot{Accounts: []ledger.Account{
		{ID: 1, Type: ledger.AccountTypeRevenue, Balance: dec("150"), PreviousBalance: decPtr("100")},
		{ID: 2, Type: ledger.AccountTypeRevenue, Balance: dec("50")},
	}}
	cards := viewmodel.ComputeStats(snap, viewmodel.DefaultPeriodFactor)

	income := cards[viewmodel.CardIncome]
	assert.True(t, income.Value.Equal(dec("200")))
	assert.True(t, income.Previous.Equal(dec("145")))
	// (200-145)/145*100 = 37.93...
	assert.Equal(t, "37.9", income.ChangePct.StringFixed(1))
}

func TestComputeStats_ZeroPreviousMeansZeroChange(t *testing.T) {
	snap := ledger.Snapshot{
		Accounts: []ledger.Account{
			{ID: 1, Type: ledger.AccountTypeAsset, Balance: dec("300"), PreviousBalance: decPtr("0")},
			{ID: 2, Type: ledger.AccountTypeRevenue, Balance: dec("80"), PreviousBalance: decPtr("0")},
			{ID: 3, Type: ledger.AccountTypeExpense, Balance: dec("0")},
		},
		Transactions: []ledger.Transaction{
			{ID: 1, Amount: dec("25"), Status: ledger.StatusPending, Date: "2024-01-02"},
			{ID: 2, Amount: dec("5"), Status: ledger.StatusPending, Date: "2024-01-03"},
			{ID: 3, Amount: dec("99"), Status: ledger.StatusPosted, Date: "2024-01-03"},
		},
	}
	cards := viewmodel.ComputeStats(snap, viewmodel.DefaultPeriodFactor)
	for _, c := range cards {
		assert.True(t, c.Previous.IsZero(), c.Title)
		assert.True(t, c.ChangePct.IsZero(), c.Title)
	}

	pending := cards[viewmodel.CardPending]
	assert.True(t, pending.Value.Equal(dec("30")))
	assert.Equal(t, 2, pending.PendingCount)
	assert.Equal(t, "2 transactions pending", pending.Caption())
}

func TestComputeStats_TotalIndependentOfOrder(t *testing.T) {
	accounts := []ledger.Account{
		{ID: 1, Type: ledger.AccountTypeAsset, Balance: dec("1000.10")},
		{ID: 2, Type: ledger.AccountTypeLiability, Balance: dec("-250.55")},
		{ID: 3, Type: ledger.AccountTypeRevenue, Balance: dec("-400")},
		{ID: 4, Type: ledger.AccountTypeExpense, Balance: dec("75.25")},
		{ID: 5, Type: ledger.AccountTypeAsset, Balance: dec("0.01")},
	}
	want := dec("424.81")

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]ledger.Account(nil), accounts...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		cards := viewmodel.ComputeStats(ledger.Snapshot{Accounts: shuffled}, viewmodel.DefaultPeriodFactor)
		assert.True(t, cards[viewmodel.CardTotalBalance].Value.Equal(want), "got %s", cards[0].Value)
	}
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, "-50.0", viewmodel.PercentChange(dec("50"), dec("100")).StringFixed(1))
	assert.Equal(t, "300.0", viewmodel.PercentChange(dec("100"), dec("-50")).StringFixed(1))
	assert.True(t, viewmodel.PercentChange(dec("100"), decimal.Zero).IsZero())
}

func TestComputeAccountUtilization(t *testing.T) {
	snap := ledger.Snapshot{Accounts: []ledger.Account{
		{ID: 1, Name: "Loan", Type: ledger.AccountTypeLiability, Balance: dec("-500")},
		{ID: 2, Name: "Cash", Type: ledger.AccountTypeAsset, Balance: dec("250")},
		{ID: 3, Name: "Sales", Type: ledger.AccountTypeRevenue, Balance: dec("-5000")},
		{ID: 4, Name: "Bank", Type: ledger.AccountTypeAsset, Balance: dec("2500")},
	}}
	rows := viewmodel.ComputeAccountUtilization(snap)
	require.Len(t, rows, 3)

	// Assets first in snapshot order, then liabilities.
	assert.Equal(t, "Cash", rows[0].Name)
	assert.Equal(t, "Bank", rows[1].Name)
	assert.Equal(t, "Loan", rows[2].Name)

	// Scale comes from the revenue account even though it is not listed.
	assert.InDelta(t, 5.0, rows[0].WidthPct, 1e-9)
	assert.InDelta(t, 50.0, rows[1].WidthPct, 1e-9)
	assert.InDelta(t, 10.0, rows[2].WidthPct, 1e-9)
}

func TestComputeAccountUtilization_Floor(t *testing.T) {
	snap := ledger.Snapshot{Accounts: []ledger.Account{
		{ID: 1, Name: "Cash", Type: ledger.AccountTypeAsset, Balance: dec("0")},
		{ID: 2, Name: "Loan", Type: ledger.AccountTypeLiability, Balance: dec("0")},
	}}
	for _, r := range viewmodel.ComputeAccountUtilization(snap) {
		assert.Equal(t, 0.0, r.WidthPct)
	}

	small := ledger.Snapshot{Accounts: []ledger.Account{
		{ID: 1, Name: "Cash", Type: ledger.AccountTypeAsset, Balance: dec("100")},
	}}
	rows := viewmodel.ComputeAccountUtilization(small)
	require.Len(t, rows, 1)
	assert.InDelta(t, 10.0, rows[0].WidthPct, 1e-9)
}

func TestBuildTransactionRows_Example(t *testing.T) {
	rows := viewmodel.BuildTransactionRows(exampleSnapshot())
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "Rent Expense", r.DebitName)
	assert.Equal(t, "Cash", r.CreditName)
	assert.True(t, r.IsExpense)
	assert.Equal(t, "-$120.00", r.DisplayAmount)
	assert.Equal(t, "Posted", r.StatusLabel)
	assert.Equal(t, "Jan 1, 2024", r.DisplayDate)
}

func TestBuildTransactionRows_StableDateDescending(t *testing.T) {
	snap := ledger.Snapshot{Transactions: []ledger.Transaction{
		{ID: 1, Date: "2024-01-01"},
		{ID: 2, Date: "2024-03-01"},
		{ID: 3, Date: "2024-01-01"},
		{ID: 4, Date: "not a date"},
		{ID: 5, Date: "2024-03-01"},
		{ID: 6, Date: "2024-01-01"},
	}}
	rows := viewmodel.BuildTransactionRows(snap)

	var ids []int64
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{2, 5, 1, 3, 6, 4}, ids)
}

func TestBuildTransactionRows_DanglingReferences(t *testing.T) {
	snap := ledger.Snapshot{
		Accounts: []ledger.Account{{ID: 1, Name: "Cash", Type: ledger.AccountTypeAsset}},
		Transactions: []ledger.Transaction{
			{ID: 1, Date: "2024-01-01", DebitAccount: 98, CreditAccount: 99, Amount: dec("10"), Status: ledger.StatusPending},
			{ID: 2, Date: "2024-01-01", DebitAccount: 1, CreditAccount: 99, Amount: dec("10"), Status: ledger.StatusPending},
		},
	}
	rows := viewmodel.BuildTransactionRows(snap)
	require.Len(t, rows, 2)

	assert.Equal(t, viewmodel.UnknownAccount, rows[0].DebitName)
	assert.Equal(t, viewmodel.UnknownAccount, rows[0].CreditName)
	assert.False(t, rows[0].IsExpense)
	assert.Equal(t, "$10.00", rows[0].DisplayAmount)
	assert.True(t, rows[0].Pending())

	assert.Equal(t, "Cash", rows[1].DebitName)
	assert.Equal(t, viewmodel.UnknownAccount, rows[1].CreditName)
}

func TestBuildInvoiceRows(t *testing.T) {
	snap := ledger.Snapshot{Invoices: []ledger.Invoice{
		{ID: 1, InvoiceNumber: "INV-1", Client: "Acme", Date: "2024-02-10", Amount: dec("1500"), Status: ledger.InvoicePaid},
		{ID: 2, InvoiceNumber: "INV-2", Client: "Globex", Date: "2024-02-11", Amount: dec("20"), Status: ledger.InvoiceOverdue},
		{ID: 3, InvoiceNumber: "INV-3", Client: "Initech", Date: "2024-02-12", Amount: dec("5"), Status: ledger.InvoicePending},
		{ID: 4, InvoiceNumber: "INV-4", Client: "Hooli", Date: "2024-02-13", Amount: dec("5"), Status: "draft"},
	}}
	rows := viewmodel.BuildInvoiceRows(snap)
	require.Len(t, rows, 4)

	assert.Equal(t, viewmodel.InvoiceCategoryPaid, rows[0].Category)
	assert.Equal(t, viewmodel.InvoiceCategoryOverdue, rows[1].Category)
	assert.Equal(t, viewmodel.InvoiceCategoryOther, rows[2].Category)
	assert.Equal(t, viewmodel.InvoiceCategoryOther, rows[3].Category)
	assert.Equal(t, "$1,500.00", rows[0].DisplayAmount)
	assert.Equal(t, "Overdue", rows[1].StatusLabel)
}

func TestBuildAccountRows(t *testing.T) {
	rows := viewmodel.BuildAccountRows(exampleSnapshot())
	require.Len(t, rows, 2)
	assert.Equal(t, "Cash", rows[0].Name)
	assert.Equal(t, "$500.00", rows[0].DisplayBalance)
	assert.Equal(t, "Debit", rows[0].NormalBalance)
}

func TestBuildAccountOptionsAndSummary(t *testing.T) {
	snap := exampleSnapshot()
	opts := viewmodel.BuildAccountOptions(snap)
	require.Len(t, opts, 2)
	assert.Equal(t, "Cash (Asset)", opts[0].Label)

	for i := 0; i < 14; i++ {
		snap.Transactions = append(snap.Transactions, ledger.Transaction{ID: int64(i + 10)})
	}
	sum := viewmodel.SummarizeTransactions(snap)
	assert.Equal(t, 10, sum.Shown)
	assert.Equal(t, 15, sum.Total)
}
