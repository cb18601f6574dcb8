package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonvc/ledgerdash/internal/ledger"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts",
}

// account create
var (
	acctCreateName        string
	acctCreateCode        string
	acctCreateType        string
	acctCreateDescription string
	acctCreateBalance     string
)

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := ledger.AccountInput{
			Name:        acctCreateName,
			Code:        acctCreateCode,
			Type:        ledger.AccountType(acctCreateType),
			Description: acctCreateDescription,
		}
		if acctCreateBalance != "" {
			bal, err := ledger.ParseAmount(acctCreateBalance)
			if err != nil {
				return fmt.Errorf("invalid balance %q: %w", acctCreateBalance, err)
			}
			in.Balance = &bal
		}

		created, err := newSession(cfg.APIURL).SubmitAccount(context.Background(), in)
		if err := warnStale(err); err != nil {
			return err
		}
		fmt.Printf("Account created: #%d %s (%s)\n", created.ID, in.Name, in.Type)
		return nil
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(context.Background())
		if err != nil {
			return err
		}

		rows := s.AccountRows()
		if len(rows) == 0 {
			fmt.Println("No accounts found.")
			return nil
		}

		fmt.Printf("%-6s %-6s %-30s %-10s %16s\n", "ID", "CODE", "NAME", "TYPE", "BALANCE")
		fmt.Printf("%-6s %-6s %-30s %-10s %16s\n", "--", "----", "----", "----", "-------")
		for _, r := range rows {
			name := r.Name
			if len(name) > 28 {
				name = name[:28] + ".."
			}
			fmt.Printf("%-6d %-6s %-30s %-10s %16s\n", r.ID, r.Code, name, r.Type, r.DisplayBalance)
		}
		return nil
	},
}

func init() {
	accountCreateCmd.Flags().StringVar(&acctCreateName, "name", "", "Account name")
	accountCreateCmd.Flags().StringVar(&acctCreateCode, "code", "", "Account code (1-9999)")
	accountCreateCmd.Flags().StringVar(&acctCreateType, "type", "", "Account type: Asset, Liability, Revenue, Expense")
	accountCreateCmd.Flags().StringVar(&acctCreateDescription, "description", "", "Account description")
	accountCreateCmd.Flags().StringVar(&acctCreateBalance, "balance", "0", "Opening balance")
	accountCreateCmd.MarkFlagRequired("name")
	accountCreateCmd.MarkFlagRequired("type")

	accountCmd.AddCommand(accountCreateCmd, accountListCmd)
	rootCmd.AddCommand(accountCmd)
}
