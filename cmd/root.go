package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonvc/ledgerdash/internal/client"
	"github.com/simonvc/ledgerdash/internal/config"
	"github.com/simonvc/ledgerdash/internal/dashboard"
)

var (
	flagServer   string
	flagToken    string
	flagDB       string
	flagLogLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ledgerdash",
	Short: "Financial dashboard for a small-business ledger",
	Long: "A dashboard over a ledger REST API: stat cards, account balances, transactions and invoices,\n" +
		"in the terminal or the browser. Ships with a local SQLite-backed API server.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("server") {
			loaded.APIURL = flagServer
		}
		if flags.Changed("token") {
			loaded.APIToken = flagToken
		}
		if flags.Changed("db") {
			loaded.DBPath = flagDB
		}
		if flags.Changed("log-level") {
			loaded.LogLevel = flagLogLevel
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		level, _ := config.ParseLevel(cfg.LogLevel)
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Ledger API base URL (default from LEDGERDASH_API_URL or http://localhost:5000/api)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token sent with every API request")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path for the local server (default ledgerdash.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func Execute() error {
	return rootCmd.Execute()
}

func newClient(apiURL string) *client.Client {
	return client.New(apiURL, client.WithToken(cfg.APIToken), client.WithLogger(slog.Default()))
}

func newSession(apiURL string) *dashboard.Session {
	return dashboard.NewSession(newClient(apiURL),
		dashboard.WithPeriodFactor(cfg.PeriodFactor),
		dashboard.WithLogger(slog.Default()),
	)
}

// loadSession creates a session against the configured API and fetches the
// first snapshot.
func loadSession(ctx context.Context) (*dashboard.Session, error) {
	s := newSession(cfg.APIURL)
	if err := s.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("load dashboard from %s: %w", cfg.APIURL, err)
	}
	return s, nil
}

// warnStale downgrades a refresh that failed after a successful create to a
// warning: the record exists, only the follow-up read failed. Any other
// error is returned unchanged.
func warnStale(err error) error {
	var stale *dashboard.RefreshAfterCreateError
	if errors.As(err, &stale) {
		slog.Warn("created, but reloading the dashboard failed", "error", stale.Err)
		return nil
	}
	return err
}
