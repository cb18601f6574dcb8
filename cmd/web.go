package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonvc/ledgerdash/internal/web"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the terminal dashboard to a browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiURL := cfg.APIURL
		if wantsEmbedded(cmd) {
			url, stop, err := startEmbedded()
			if err != nil {
				return err
			}
			defer stop()
			apiURL = url
		}

		fmt.Printf("ledgerdash web UI: http://%s\n", cfg.WebAddr)
		return web.NewServer(cfg.WebAddr, apiURL, cfg.APIToken, nil).ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(webCmd)
}
