package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

var txnCmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"txn"},
	Short:   "Manage transactions",
}

var (
	txnCreateDate        string
	txnCreateDescription string
	txnCreateReference   string
	txnCreateDebit       int64
	txnCreateCredit      int64
	txnCreateAmount      string
	txnCreateStatus      string
)

var txnCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Record a transaction between two accounts",
	Example: `  ledgerdash transaction create --description "March rent" \
    --debit 5 --credit 1 --amount 1200.00 --status posted`,
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := ledger.ParseAmount(txnCreateAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", txnCreateAmount, err)
		}

		created, err := newSession(cfg.APIURL).SubmitTransaction(context.Background(), ledger.TransactionInput{
			Date:          txnCreateDate,
			Description:   txnCreateDescription,
			Reference:     txnCreateReference,
			DebitAccount:  txnCreateDebit,
			CreditAccount: txnCreateCredit,
			Amount:        amount,
			Status:        ledger.TransactionStatus(txnCreateStatus),
		})
		if err := warnStale(err); err != nil {
			return err
		}
		fmt.Printf("Transaction created: #%d %s %s\n", created.ID, txnCreateDescription, ledger.FormatUSD(amount))
		return nil
	},
}

var txnListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(context.Background())
		if err != nil {
			return err
		}

		rows := s.TransactionRows()
		if len(rows) == 0 {
			fmt.Println("No transactions found.")
			return nil
		}

		fmt.Printf("%-6s %-13s %-28s %-20s %-20s %14s  %s\n", "ID", "DATE", "DESCRIPTION", "DEBIT", "CREDIT", "AMOUNT", "STATUS")
		for _, r := range rows {
			fmt.Printf("%-6d %-13s %-28s %-20s %-20s %14s  %s\n",
				r.ID, r.DisplayDate, ansi.Truncate(r.Description, 28, ".."), ansi.Truncate(r.DebitName, 20, ".."), ansi.Truncate(r.CreditName, 20, ".."), r.DisplayAmount, r.StatusLabel)
		}
		return nil
	},
}

func init() {
	txnCreateCmd.Flags().StringVar(&txnCreateDate, "date", time.Now().Format(ledger.DateLayout), "Transaction date (YYYY-MM-DD)")
	txnCreateCmd.Flags().StringVar(&txnCreateDescription, "description", "", "Description")
	txnCreateCmd.Flags().StringVar(&txnCreateReference, "reference", "", "Optional reference")
	txnCreateCmd.Flags().Int64Var(&txnCreateDebit, "debit", 0, "Debit account id")
	txnCreateCmd.Flags().Int64Var(&txnCreateCredit, "credit", 0, "Credit account id")
	txnCreateCmd.Flags().StringVar(&txnCreateAmount, "amount", "", "Amount, e.g. 120.50")
	txnCreateCmd.Flags().StringVar(&txnCreateStatus, "status", string(ledger.StatusPending), "pending or posted")
	txnCreateCmd.MarkFlagRequired("amount")

	txnCmd.AddCommand(txnCreateCmd, txnListCmd)
	rootCmd.AddCommand(txnCmd)
}
