package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"

	"github.com/simonvc/ledgerdash/internal/ledger"
	"github.com/simonvc/ledgerdash/internal/viewmodel"
)

type reportPreset int

const (
	presetAllTime reportPreset = iota
	presetThisYear
	presetThisMonth
)

var reportPresets = []reportPreset{presetAllTime, presetThisYear, presetThisMonth}

func (p reportPreset) label() string {
	switch p {
	case presetThisYear:
		return "This year"
	case presetThisMonth:
		return "This month"
	default:
		return "All time"
	}
}

// reportsModel renders one report from the session snapshot. Left/right
// switch the report, up/down switch the period.
type reportsModel struct {
	kind   int
	preset int
	width  int
	now    func() time.Time
}

func (m reportsModel) reportType() ledger.ReportType {
	return ledger.ReportTypes[m.kind]
}

func (m reportsModel) period() ledger.Period {
	now := time.Now
	if m.now != nil {
		now = m.now
	}
	today := ledger.Day(now())
	y, mon, _ := today.Date()

	switch reportPresets[m.preset] {
	case presetThisYear:
		return ledger.Period{
			From: time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC),
		}
	case presetThisMonth:
		first := time.Date(y, mon, 1, 0, 0, 0, 0, time.UTC)
		return ledger.Period{From: first, To: first.AddDate(0, 1, -1)}
	default:
		return ledger.Period{}
	}
}

func (m reportsModel) update(msg tea.Msg) reportsModel {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m
	}
	n := len(ledger.ReportTypes)
	switch {
	case key.Matches(km, keys.Right):
		m.kind = (m.kind + 1) % n
	case key.Matches(km, keys.Left):
		m.kind = (m.kind - 1 + n) % n
	case key.Matches(km, keys.Down):
		m.preset = (m.preset + 1) % len(reportPresets)
	case key.Matches(km, keys.Up):
		m.preset = (m.preset - 1 + len(reportPresets)) % len(reportPresets)
	}
	return m
}

func (m *reportsModel) view(r viewmodel.Report) string {
	var b strings.Builder
	w := m.width
	if w < 60 {
		w = 80
	}

	nameW := w - 32
	if nameW < 10 {
		nameW = 10
	}
	if nameW > 40 {
		nameW = 40
	}
	// Total rows span the code and name columns so amounts line up.
	totalLabelW := nameW + 7

	tabs := make([]string, len(ledger.ReportTypes))
	for i, t := range ledger.ReportTypes {
		if i == m.kind {
			tabs[i] = selectedStyle.Render("[" + t.Title() + "]")
		} else {
			tabs[i] = dimStyle.Render(" " + t.Title() + " ")
		}
	}
	b.WriteString("  " + strings.Join(tabs, " ") + "\n\n")

	p := m.period()
	subtitle := reportPresets[m.preset].label() + ": " + p.Label()
	if r.Type == ledger.ReportBalanceSheet {
		subtitle = "As of today"
		if p.End() != "" {
			subtitle = "As of " + p.End()
		}
	}
	b.WriteString(titleStyle.Render(centerStr(strings.ToUpper(r.Type.Title()), w)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerStr(subtitle, w)))
	b.WriteString("\n\n")

	rule := func(ch string) {
		b.WriteString(fmt.Sprintf("    %s\n", strings.Repeat(ch, w-8)))
	}
	totalRow := func(label string, amount string) {
		b.WriteString(fmt.Sprintf("    %-*s %14s\n", totalLabelW, label, amount))
	}
	renderSection := func(sec viewmodel.ReportSection) {
		b.WriteString(fmt.Sprintf("  %s\n", headerStyle.Render(sec.Title)))
		if len(sec.Lines) == 0 {
			b.WriteString(dimStyle.Render("    (no entries)") + "\n\n")
			return
		}
		for _, l := range sec.Lines {
			b.WriteString(fmt.Sprintf("    %-6s %-*s %14s\n",
				l.Code, nameW, ansi.Truncate(l.Name, nameW, ".."), ledger.FormatAccounting(l.Amount)))
		}
		rule("─")
		totalRow("Total "+sec.Title, ledger.FormatAccounting(sec.Total))
		b.WriteString("\n")
	}
	balanced := func(ok bool) {
		b.WriteString("\n")
		if ok {
			b.WriteString(successStyle.Render("    [BALANCED]"))
		} else {
			b.WriteString(errorStyle.Render("    [UNBALANCED!]"))
		}
	}

	switch {
	case r.BalanceSheet != nil:
		bs := r.BalanceSheet
		renderSection(bs.Assets)
		renderSection(bs.Liabilities)
		renderSection(bs.Equity)
		rule("═")
		totalRow("Total L + E", ledger.FormatAccounting(bs.TotalLiabilitiesEquity))
		balanced(bs.Balanced)

	case r.IncomeStatement != nil:
		is := r.IncomeStatement
		renderSection(is.Revenue)
		renderSection(is.Expenses)
		rule("═")
		totalRow("Net Income", ledger.FormatAccounting(is.NetIncome))

	case r.TrialBalance != nil:
		tb := r.TrialBalance
		b.WriteString(headerStyle.Render(fmt.Sprintf("    %-6s %-*s %14s %14s", "CODE", nameW, "NAME", "DEBIT", "CREDIT")))
		b.WriteString("\n")
		if len(tb.Lines) == 0 {
			b.WriteString(dimStyle.Render("    No posted activity in this period.") + "\n")
		}
		for _, l := range tb.Lines {
			b.WriteString(fmt.Sprintf("    %-6s %-*s %14s %14s\n",
				l.Code, nameW, ansi.Truncate(l.Name, nameW, ".."), nonZero(l.Debits), nonZero(l.Credits)))
		}
		rule("─")
		b.WriteString(fmt.Sprintf("    %-*s %14s %14s\n", totalLabelW, "TOTALS",
			ledger.FormatUSD(tb.TotalDebits), ledger.FormatUSD(tb.TotalCredits)))
		balanced(tb.Balanced)
	}

	return b.String()
}

func nonZero(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return ledger.FormatUSD(d)
}

func centerStr(s string, w int) string {
	sw := ansi.StringWidth(s)
	if sw >= w {
		return s
	}
	pad := (w - sw) / 2
	return strings.Repeat(" ", pad) + s
}
