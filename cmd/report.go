package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/simonvc/ledgerdash/internal/ledger"
	"github.com/simonvc/ledgerdash/internal/viewmodel"
)

var (
	flagReportFrom string
	flagReportTo   string
)

var reportCmd = &cobra.Command{
	Use:       "report <balance-sheet|income-statement|trial-balance>",
	Short:     "Print a financial report",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"balance-sheet", "income-statement", "trial-balance"},
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, ok := ledger.ParseReportType(args[0])
		if !ok {
			return fmt.Errorf("unknown report %q (want balance-sheet, income-statement or trial-balance)", args[0])
		}
		period, err := ledger.ParsePeriod(flagReportFrom, flagReportTo)
		if err != nil {
			return err
		}

		s, err := loadSession(context.Background())
		if err != nil {
			return err
		}

		r := s.Report(rt, period)
		switch {
		case r.BalanceSheet != nil:
			printBalanceSheet(r.BalanceSheet, period)
		case r.IncomeStatement != nil:
			printIncomeStatement(r.IncomeStatement, period)
		case r.TrialBalance != nil:
			printTrialBalance(r.TrialBalance, period)
		}
		return nil
	},
}

func printBalanceSheet(bs *viewmodel.BalanceSheet, p ledger.Period) {
	w := 60
	asOf := "today"
	if p.End() != "" {
		asOf = p.End()
	}
	printHeading("BALANCE SHEET", "As of "+asOf, w)

	printSection(bs.Assets, w)
	printSection(bs.Liabilities, w)
	printSection(bs.Equity, w)

	fmt.Printf("%*s%s\n", w-15, "", "═════════════")
	fmt.Printf("%-*s%15s\n", w-15, "Total L + E", ledger.FormatAccounting(bs.TotalLiabilitiesEquity))
	printBalanced(bs.Balanced)
}

func printIncomeStatement(is *viewmodel.IncomeStatement, p ledger.Period) {
	w := 60
	printHeading("INCOME STATEMENT", p.Label(), w)

	printSection(is.Revenue, w)
	printSection(is.Expenses, w)

	fmt.Printf("%*s%s\n", w-15, "", "═════════════")
	fmt.Printf("%-*s%15s\n", w-15, "Net Income", ledger.FormatAccounting(is.NetIncome))
}

func printSection(sec viewmodel.ReportSection, w int) {
	fmt.Printf("  %s\n", strings.ToUpper(sec.Title))
	fmt.Printf("  %s\n", strings.Repeat("─", w-4))
	if len(sec.Lines) == 0 {
		fmt.Println("  (no entries)")
	}
	for _, l := range sec.Lines {
		fmt.Printf("  %-6s %-*s%15s\n", l.Code, w-24, ansi.Truncate(l.Name, 30, ".."), ledger.FormatAccounting(l.Amount))
	}
	fmt.Printf("%*s%s\n", w-15, "", "─────────────")
	fmt.Printf("%-*s%15s\n", w-15, "Total "+sec.Title, ledger.FormatAccounting(sec.Total))
	fmt.Println()
}

func printTrialBalance(tb *viewmodel.TrialBalance, p ledger.Period) {
	w := 70
	printHeading("TRIAL BALANCE", p.Label(), w)

	fmt.Printf("  %-8s %-30s %15s %15s\n", "CODE", "NAME", "DEBIT", "CREDIT")
	fmt.Printf("  %-8s %-30s %15s %15s\n", "----", "----", "-----", "------")
	for _, l := range tb.Lines {
		fmt.Printf("  %-8s %-30s %15s %15s\n", l.Code, ansi.Truncate(l.Name, 30, ".."), amountOrBlank(l.Debits), amountOrBlank(l.Credits))
	}

	fmt.Printf("  %s\n", strings.Repeat("─", w-4))
	fmt.Printf("  %-39s %15s %15s\n", "TOTALS", ledger.FormatUSD(tb.TotalDebits), ledger.FormatUSD(tb.TotalCredits))
	printBalanced(tb.Balanced)
}

func printHeading(title, subtitle string, w int) {
	fmt.Println()
	fmt.Println(center(title, w))
	fmt.Println(center(subtitle, w))
	fmt.Println(center(strings.Repeat("=", 20), w))
	fmt.Println()
}

func printBalanced(ok bool) {
	if ok {
		fmt.Println("\n  [BALANCED]")
	} else {
		fmt.Println("\n  [UNBALANCED!]")
	}
}

func amountOrBlank(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return ledger.FormatUSD(d)
}

func center(s string, w int) string {
	sw := ansi.StringWidth(s)
	if sw >= w {
		return s
	}
	return strings.Repeat(" ", (w-sw)/2) + s
}

func init() {
	reportCmd.Flags().StringVar(&flagReportFrom, "from", "", "Start date (YYYY-MM-DD); income statement and trial balance only")
	reportCmd.Flags().StringVar(&flagReportTo, "to", "", "End date (YYYY-MM-DD); the balance sheet is as of this date")
	rootCmd.AddCommand(reportCmd)
}
