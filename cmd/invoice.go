package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Manage invoices",
}

var (
	invCreateNumber string
	invCreateClient string
	invCreateDate   string
	invCreateAmount string
	invCreateStatus string
)

var invoiceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := ledger.ParseAmount(invCreateAmount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", invCreateAmount, err)
		}

		created, err := newSession(cfg.APIURL).SubmitInvoice(context.Background(), ledger.InvoiceInput{
			InvoiceNumber: invCreateNumber,
			Client:        invCreateClient,
			Date:          invCreateDate,
			Amount:        amount,
			Status:        ledger.InvoiceStatus(invCreateStatus),
		})
		if err := warnStale(err); err != nil {
			return err
		}
		fmt.Printf("Invoice created: #%d %s for %s (%s)\n", created.ID, invCreateNumber, invCreateClient, ledger.FormatUSD(amount))
		return nil
	},
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(context.Background())
		if err != nil {
			return err
		}

		rows := s.InvoiceRows()
		if len(rows) == 0 {
			fmt.Println("No invoices found.")
			return nil
		}

		fmt.Printf("%-14s %-28s %-13s %14s  %s\n", "NUMBER", "CLIENT", "DATE", "AMOUNT", "STATUS")
		for _, r := range rows {
			fmt.Printf("%-14s %-28s %-13s %14s  %s\n",
				ansi.Truncate(r.Number, 14, ".."), ansi.Truncate(r.Client, 28, ".."), r.DisplayDate, r.DisplayAmount, r.StatusLabel)
		}
		return nil
	},
}

func init() {
	invoiceCreateCmd.Flags().StringVar(&invCreateNumber, "number", "", "Invoice number, e.g. INV-001")
	invoiceCreateCmd.Flags().StringVar(&invCreateClient, "client", "", "Client name")
	invoiceCreateCmd.Flags().StringVar(&invCreateDate, "date", time.Now().Format(ledger.DateLayout), "Invoice date (YYYY-MM-DD)")
	invoiceCreateCmd.Flags().StringVar(&invCreateAmount, "amount", "", "Amount, e.g. 1200.00")
	invoiceCreateCmd.Flags().StringVar(&invCreateStatus, "status", string(ledger.InvoicePending), "pending, paid or overdue")
	invoiceCreateCmd.MarkFlagRequired("amount")

	invoiceCmd.AddCommand(invoiceCreateCmd, invoiceListCmd)
	rootCmd.AddCommand(invoiceCmd)
}
