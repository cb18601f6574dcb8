package viewmodel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

// DefaultPeriodFactor extrapolates a previous-period balance when the
// backend does not report one. It is a placeholder, not a historical read.
const DefaultPeriodFactor = 0.9

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

type CardKind int

const (
	CardTotalBalance CardKind = iota
	CardIncome
	CardExpenses
	CardPending
)

type StatCard struct {
	Kind     CardKind
	Title    string
	Value    decimal.Decimal
	Previous decimal.Decimal
	// ChangePct is rounded to one decimal place and is zero when Previous is zero.
	ChangePct    decimal.Decimal
	Trend        Trend
	PendingCount int
}

// DisplayValue returns the card value formatted as dollars.
func (c StatCard) DisplayValue() string {
	return ledger.FormatUSD(c.Value)
}

// Caption is the line shown under the card value.
func (c StatCard) Caption() string {
	if c.Kind == CardPending {
		return fmt.Sprintf("%d transactions pending", c.PendingCount)
	}
	return fmt.Sprintf("%s%% from last month", c.ChangePct.StringFixed(1))
}

// PercentChange returns (current-previous)/|previous|*100 rounded to one
// decimal place, or zero when previous is zero.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(decimal.NewFromInt(100)).Round(1)
}

// previousBalance uses a stored previous_balance whenever one is present,
// including zero. Only a missing value falls back to extrapolation.
func previousBalance(a ledger.Account, factor decimal.Decimal) decimal.Decimal {
	if a.PreviousBalance != nil {
		return *a.PreviousBalance
	}
	return a.Balance.Mul(factor)
}

// ComputeStats derives the four dashboard cards: total balance, income,
// expenses and pending.
func ComputeStats(snap ledger.Snapshot, periodFactor float64) [4]StatCard {
	factor := decimal.NewFromFloat(periodFactor)

	var total, prevTotal, income, prevIncome, expenses, prevExpenses decimal.Decimal
	for _, a := range snap.Accounts {
		prev := previousBalance(a, factor)
		total = total.Add(a.Balance)
		prevTotal = prevTotal.Add(prev)
		switch a.Type {
		case ledger.AccountTypeRevenue:
			income = income.Add(a.Balance)
			prevIncome = prevIncome.Add(prev)
		case ledger.AccountTypeExpense:
			expenses = expenses.Add(a.Balance)
			prevExpenses = prevExpenses.Add(prev)
		}
	}

	var pending decimal.Decimal
	pendingCount := 0
	for _, t := range snap.Transactions {
		if t.Status == ledger.StatusPending {
			pending = pending.Add(t.Amount)
			pendingCount++
		}
	}

	return [4]StatCard{
		balanceCard(CardTotalBalance, "Total Balance", total, prevTotal),
		balanceCard(CardIncome, "Income", income, prevIncome),
		balanceCard(CardExpenses, "Expenses", expenses, prevExpenses),
		{
			Kind:         CardPending,
			Title:        "Pending",
			Value:        pending,
			Previous:     decimal.Zero,
			ChangePct:    decimal.Zero,
			Trend:        TrendFlat,
			PendingCount: pendingCount,
		},
	}
}

func balanceCard(kind CardKind, title string, current, previous decimal.Decimal) StatCard {
	trend := TrendDown
	if current.GreaterThanOrEqual(previous) {
		trend = TrendUp
	}
	return StatCard{
		Kind:      kind,
		Title:     title,
		Value:     current,
		Previous:  previous,
		ChangePct: PercentChange(current, previous),
		Trend:     trend,
	}
}
