package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/simonvc/ledgerdash/internal/viewmodel"
)

type overviewData struct {
	stats       [4]viewmodel.StatCard
	utilization []viewmodel.UtilizationRow
	recent      []viewmodel.TransactionRow
	summary     viewmodel.TransactionSummary
}

type overviewModel struct {
	width int
}

func (m *overviewModel) view(d overviewData) string {
	var b strings.Builder

	cards := make([]string, 0, len(d.stats))
	for _, c := range d.stats {
		cards = append(cards, statCard(c))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Account Balances"))
	b.WriteString("\n")
	if len(d.utilization) == 0 {
		b.WriteString(dimStyle.Render("  No asset or liability accounts."))
		b.WriteString("\n")
	}
	for _, u := range d.utilization {
		b.WriteString(fmt.Sprintf("  %-22s %s %14s\n",
			ansi.Truncate(u.Name, 22, ".."), utilizationBar(u.WidthPct, m.width-44), u.DisplayBalance()))
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Recent Transactions"))
	b.WriteString("\n")
	if len(d.recent) == 0 {
		b.WriteString(dimStyle.Render("  No transactions yet."))
		b.WriteString("\n")
	}
	for i := 0; i < d.summary.Shown && i < len(d.recent); i++ {
		b.WriteString(txnLine(d.recent[i], false))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Showing %d of %d transactions", d.summary.Shown, d.summary.Total)))

	return b.String()
}

func statCard(c viewmodel.StatCard) string {
	caption := c.Caption()
	switch c.Trend {
	case viewmodel.TrendUp:
		caption = inflowStyle.Render("▲ " + caption)
	case viewmodel.TrendDown:
		caption = outflowStyle.Render("▼ " + caption)
	default:
		if c.Kind == viewmodel.CardPending {
			caption = pendingStyle.Render(caption)
		} else {
			caption = dimStyle.Render(caption)
		}
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		dimStyle.Render(c.Title),
		cardValueStyle.Render(c.DisplayValue()),
		caption,
	))
}

// utilizationBar draws pct (0-100) of a bar at most 50 cells wide.
func utilizationBar(pct float64, width int) string {
	if width < 10 {
		width = 40
	}
	barWidth := width - 10
	if barWidth > 50 {
		barWidth = 50
	}
	filled := int(pct / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
