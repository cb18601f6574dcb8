package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/simonvc/ledgerdash/internal/viewmodel"
)

type txnListModel struct {
	listCursor
}

func (m *txnListModel) view(rows []viewmodel.TransactionRow) string {
	if len(rows) == 0 {
		return dimStyle.Render("No transactions yet. Press 'n' to record one.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Transactions"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-13s %-26s %-18s %-18s %14s  %s", "DATE", "DESCRIPTION", "DEBIT", "CREDIT", "AMOUNT", "STATUS")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	start, end := m.window(len(rows))
	for i := start; i < end; i++ {
		b.WriteString(txnLine(rows[i], i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  %d transactions", len(rows)))
	return b.String()
}

func txnLine(r viewmodel.TransactionRow, selected bool) string {
	amount := fmt.Sprintf("%14s", r.DisplayAmount)
	status := r.StatusLabel
	if !selected {
		if r.IsExpense {
			amount = outflowStyle.Render(amount)
		} else {
			amount = inflowStyle.Render(amount)
		}
		if r.Pending() {
			status = pendingStyle.Render(status)
		}
	}

	line := fmt.Sprintf("  %-13s %-26s %-18s %-18s %s  %s",
		r.DisplayDate, ansi.Truncate(r.Description, 26, ".."), ansi.Truncate(r.DebitName, 18, ".."), ansi.Truncate(r.CreditName, 18, ".."), amount, status)
	if selected {
		return selectedStyle.Render("> " + line[2:])
	}
	return line
}
