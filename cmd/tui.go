package cmd

import (
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/simonvc/ledgerdash/internal/config"
	"github.com/simonvc/ledgerdash/internal/tui"
)

var tuiLogFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The alt screen owns the terminal, so logs go to a file or nowhere.
		var logOut io.Writer = io.Discard
		if tuiLogFile != "" {
			f, err := tea.LogToFile(tuiLogFile, "ledgerdash")
			if err != nil {
				return err
			}
			defer f.Close()
			logOut = f
		}
		level, _ := config.ParseLevel(cfg.LogLevel)
		slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})))

		apiURL := cfg.APIURL
		if wantsEmbedded(cmd) {
			url, stop, err := startEmbedded()
			if err != nil {
				return err
			}
			defer stop()
			apiURL = url
		}

		app := tui.NewApp(newSession(apiURL))
		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithOutput(os.Stdout))
		_, err := p.Run()
		return err
	},
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "Write logs to this file while the TUI runs")
	rootCmd.AddCommand(tuiCmd)
}
