package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/simonvc/ledgerdash/internal/server"
	"github.com/simonvc/ledgerdash/internal/store"
)

var (
	serveAddr string
	serveSeed bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local ledger API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		if serveSeed {
			n, err := st.Seed(context.Background())
			if err != nil {
				return err
			}
			if n > 0 {
				slog.Info("seeded default accounts", "count", n)
			}
		}

		addr := cfg.ListenAddr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		return server.New(st, addr, slog.Default()).ListenAndServe()
	},
}

var closePeriodCmd = &cobra.Command{
	Use:   "close-period",
	Short: "Record current balances as last period's balances in the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.ClosePeriod(context.Background())
		if err != nil {
			return err
		}
		cmd.Printf("Period closed: %d account balances recorded\n", n)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from LEDGERDASH_LISTEN_ADDR or :5000)")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "Create the default chart of accounts when the database is empty")
	rootCmd.AddCommand(serveCmd, closePeriodCmd)
}
