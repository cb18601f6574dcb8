package viewmodel

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

// ReportLine is one account's figure in a report section.
type ReportLine struct {
	AccountID int64           `json:"account_id"`
	Code      string          `json:"code,omitempty"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// CurrentEarnings labels the equity line holding unclosed revenue and
// expense balances.
const CurrentEarnings = "Current Earnings"

type ReportSection struct {
	Title string          `json:"title"`
	Lines []ReportLine    `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

func newSection(title string) ReportSection {
	return ReportSection{Title: title, Lines: []ReportLine{}}
}

func (s *ReportSection) add(a ledger.Account, amount decimal.Decimal) {
	s.Lines = append(s.Lines, ReportLine{AccountID: a.ID, Code: a.Code, Name: a.Name, Amount: amount})
	s.Total = s.Total.Add(amount)
}

// BalanceSheet lists signed balances as of a date. Balances are debit
// positive, so liabilities and equity are normally negative and the sheet
// balances when assets, liabilities and equity sum to zero. Revenue and
// expense balances are folded into equity as one CurrentEarnings line.
type BalanceSheet struct {
	Assets                 ReportSection   `json:"assets"`
	Liabilities            ReportSection   `json:"liabilities"`
	Equity                 ReportSection   `json:"equity"`
	TotalLiabilitiesEquity decimal.Decimal `json:"total_liabilities_equity"`
	Difference             decimal.Decimal `json:"difference"`
	Balanced               bool            `json:"balanced"`
}

// IncomeStatement nets posted activity on revenue and expense accounts over
// a period: revenue is credits less debits, expenses are debits less credits.
type IncomeStatement struct {
	Revenue   ReportSection   `json:"revenue"`
	Expenses  ReportSection   `json:"expenses"`
	NetIncome decimal.Decimal `json:"net_income"`
}

type TrialBalanceLine struct {
	AccountID int64              `json:"account_id"`
	Code      string             `json:"code,omitempty"`
	Name      string             `json:"name"`
	Type      ledger.AccountType `json:"type,omitempty"`
	Debits    decimal.Decimal    `json:"debits"`
	Credits   decimal.Decimal    `json:"credits"`
}

// TrialBalance totals posted debits and credits per account over a period.
// Only accounts with activity are listed.
type TrialBalance struct {
	Lines        []TrialBalanceLine `json:"lines"`
	TotalDebits  decimal.Decimal    `json:"total_debits"`
	TotalCredits decimal.Decimal    `json:"total_credits"`
	Difference   decimal.Decimal    `json:"difference"`
	Balanced     bool               `json:"balanced"`
}

// Report is one generated report. Exactly one of the report fields is set,
// matching Type.
type Report struct {
	Type      ledger.ReportType `json:"report_type"`
	StartDate string            `json:"start_date,omitempty"`
	EndDate   string            `json:"end_date,omitempty"`

	BalanceSheet    *BalanceSheet    `json:"balance_sheet,omitempty"`
	IncomeStatement *IncomeStatement `json:"income_statement,omitempty"`
	TrialBalance    *TrialBalance    `json:"trial_balance,omitempty"`
}

// BuildReport generates the report of type t over p. A balance sheet only
// uses the end of the period.
func BuildReport(snap ledger.Snapshot, t ledger.ReportType, p ledger.Period) Report {
	r := Report{Type: t, StartDate: p.Start(), EndDate: p.End()}
	switch t {
	case ledger.ReportBalanceSheet:
		bs := BuildBalanceSheet(snap, p.To)
		r.BalanceSheet = &bs
		r.StartDate = ""
	case ledger.ReportIncomeStatement:
		is := BuildIncomeStatement(snap, p)
		r.IncomeStatement = &is
	case ledger.ReportTrialBalance:
		tb := BuildTrialBalance(snap, p)
		r.TrialBalance = &tb
	}
	return r
}

// BuildBalanceSheet reports balances as of asOf (zero means now). Posting
// adds to the debit account and subtracts from the credit account, so the
// effect of posted transactions dated after asOf is reversed out of the
// current balances.
func BuildBalanceSheet(snap ledger.Snapshot, asOf time.Time) BalanceSheet {
	later := map[int64]decimal.Decimal{}
	if !asOf.IsZero() {
		cutoff := ledger.Day(asOf)
		for _, t := range snap.Transactions {
			if t.Status != ledger.StatusPosted {
				continue
			}
			d, ok := ledger.ParseDate(t.Date)
			if !ok || !ledger.Day(d).After(cutoff) {
				continue
			}
			later[t.DebitAccount] = later[t.DebitAccount].Add(t.Amount)
			later[t.CreditAccount] = later[t.CreditAccount].Sub(t.Amount)
		}
	}

	bs := BalanceSheet{
		Assets:      newSection("Assets"),
		Liabilities: newSection("Liabilities"),
		Equity:      newSection("Equity"),
	}
	var earnings decimal.Decimal
	var hasEarnings bool
	for _, a := range snap.Accounts {
		bal := a.Balance.Sub(later[a.ID])
		switch a.Type {
		case ledger.AccountTypeAsset:
			bs.Assets.add(a, bal)
		case ledger.AccountTypeLiability:
			bs.Liabilities.add(a, bal)
		case ledger.AccountTypeEquity:
			bs.Equity.add(a, bal)
		case ledger.AccountTypeRevenue, ledger.AccountTypeExpense:
			earnings = earnings.Add(bal)
			hasEarnings = true
		}
	}
	if hasEarnings {
		bs.Equity.add(ledger.Account{Name: CurrentEarnings}, earnings)
	}
	bs.TotalLiabilitiesEquity = bs.Liabilities.Total.Add(bs.Equity.Total)
	bs.Difference = bs.Assets.Total.Add(bs.TotalLiabilitiesEquity)
	bs.Balanced = bs.Difference.IsZero()
	return bs
}

type activity struct {
	debits  decimal.Decimal
	credits decimal.Decimal
}

// postedActivity sums posted transactions in p per account. Transactions
// with unparseable dates only count when p is unbounded.
func postedActivity(snap ledger.Snapshot, p ledger.Period) map[int64]*activity {
	acts := map[int64]*activity{}
	get := func(id int64) *activity {
		a, ok := acts[id]
		if !ok {
			a = &activity{}
			acts[id] = a
		}
		return a
	}
	for _, t := range snap.Transactions {
		if t.Status != ledger.StatusPosted {
			continue
		}
		if d, ok := ledger.ParseDate(t.Date); ok {
			if !p.Contains(d) {
				continue
			}
		} else if p.Bounded() {
			continue
		}
		dr := get(t.DebitAccount)
		dr.debits = dr.debits.Add(t.Amount)
		cr := get(t.CreditAccount)
		cr.credits = cr.credits.Add(t.Amount)
	}
	return acts
}

func BuildIncomeStatement(snap ledger.Snapshot, p ledger.Period) IncomeStatement {
	acts := postedActivity(snap, p)
	is := IncomeStatement{
		Revenue:  newSection("Revenue"),
		Expenses: newSection("Expenses"),
	}
	for _, a := range snap.Accounts {
		act := acts[a.ID]
		if act == nil {
			act = &activity{}
		}
		switch a.Type {
		case ledger.AccountTypeRevenue:
			is.Revenue.add(a, act.credits.Sub(act.debits))
		case ledger.AccountTypeExpense:
			is.Expenses.add(a, act.debits.Sub(act.credits))
		}
	}
	is.NetIncome = is.Revenue.Total.Sub(is.Expenses.Total)
	return is
}

// BuildTrialBalance lists accounts in snapshot order. Activity on account
// ids missing from the snapshot is listed last under UnknownAccount, so the
// totals still cover every posted transaction.
func BuildTrialBalance(snap ledger.Snapshot, p ledger.Period) TrialBalance {
	acts := postedActivity(snap, p)
	tb := TrialBalance{Lines: []TrialBalanceLine{}}

	addLine := func(line TrialBalanceLine) {
		tb.Lines = append(tb.Lines, line)
		tb.TotalDebits = tb.TotalDebits.Add(line.Debits)
		tb.TotalCredits = tb.TotalCredits.Add(line.Credits)
	}

	for _, a := range snap.Accounts {
		act, ok := acts[a.ID]
		if !ok {
			continue
		}
		delete(acts, a.ID)
		addLine(TrialBalanceLine{AccountID: a.ID, Code: a.Code, Name: a.Name, Type: a.Type, Debits: act.debits, Credits: act.credits})
	}

	unknown := make([]int64, 0, len(acts))
	for id := range acts {
		unknown = append(unknown, id)
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	for _, id := range unknown {
		act := acts[id]
		addLine(TrialBalanceLine{AccountID: id, Name: UnknownAccount, Debits: act.debits, Credits: act.credits})
	}

	tb.Difference = tb.TotalDebits.Sub(tb.TotalCredits)
	tb.Balanced = tb.Difference.IsZero()
	return tb
}
