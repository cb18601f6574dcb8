package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/simonvc/ledgerdash/internal/viewmodel"
)

type invoiceListModel struct {
	listCursor
}

func (m *invoiceListModel) view(rows []viewmodel.InvoiceRow) string {
	if len(rows) == 0 {
		return dimStyle.Render("No invoices yet. Press 'n' to create one.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Invoices"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-14s %-26s %-13s %14s  %s", "NUMBER", "CLIENT", "DATE", "AMOUNT", "STATUS")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	start, end := m.window(len(rows))
	for i := start; i < end; i++ {
		r := rows[i]
		status := r.StatusLabel
		if i != m.cursor {
			switch r.Category {
			case viewmodel.InvoiceCategoryPaid:
				status = successStyle.Render(status)
			case viewmodel.InvoiceCategoryOverdue:
				status = errorStyle.Render(status)
			default:
				status = pendingStyle.Render(status)
			}
		}
		line := fmt.Sprintf("  %-14s %-26s %-13s %14s  %s",
			ansi.Truncate(r.Number, 14, ".."), ansi.Truncate(r.Client, 26, ".."), r.DisplayDate, r.DisplayAmount, status)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  %d invoices", len(rows)))
	return b.String()
}
