package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/simonvc/ledgerdash/internal/viewmodel"
)

type accountListModel struct {
	listCursor
}

func (m *accountListModel) view(rows []viewmodel.AccountRow) string {
	if len(rows) == 0 {
		return dimStyle.Render("No accounts found. Press 'n' to create one.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Accounts"))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-6s %-28s %-10s %-7s %16s  %s", "CODE", "NAME", "TYPE", "NORMAL", "BALANCE", "UPDATED")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	start, end := m.window(len(rows))
	for i := start; i < end; i++ {
		r := rows[i]
		line := fmt.Sprintf("  %-6s %-28s %-10s %-7s %16s  %s",
			r.Code, ansi.Truncate(r.Name, 28, ".."), r.Type, r.NormalBalance, r.DisplayBalance, r.Updated)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  %d accounts", len(rows)))
	return b.String()
}
