package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard stat cards and account balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(context.Background())
		if err != nil {
			return err
		}

		fmt.Println()
		for _, c := range s.Stats() {
			fmt.Printf("%-16s %16s   %s\n", c.Title, c.DisplayValue(), c.Caption())
		}

		rows := s.Utilization()
		if len(rows) > 0 {
			fmt.Println()
			fmt.Println("Account balances")
			fmt.Println(strings.Repeat("─", 60))
			for _, u := range rows {
				filled := int(u.WidthPct / 100 * 20)
				bar := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
				fmt.Printf("%-22s %s %15s\n", ansi.Truncate(u.Name, 22, ".."), bar, u.DisplayBalance())
			}
		}

		sum := s.TransactionSummary()
		fmt.Printf("\nShowing %d of %d transactions (see 'ledgerdash transaction list')\n", sum.Shown, sum.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
