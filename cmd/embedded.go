package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/simonvc/ledgerdash/internal/server"
	"github.com/simonvc/ledgerdash/internal/store"
)

// wantsEmbedded reports whether no API was configured explicitly, in which
// case tui and web run their own local server.
func wantsEmbedded(cmd *cobra.Command) bool {
	return !cmd.Flags().Changed("server") && os.Getenv("LEDGERDASH_API_URL") == ""
}

// startEmbedded opens the local store, serves it on a loopback port and
// returns the API URL plus a shutdown func.
func startEmbedded() (string, func(), error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return "", nil, fmt.Errorf("open database: %w", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		st.Close()
		return "", nil, fmt.Errorf("listen: %w", err)
	}

	srv := server.New(st, ln.Addr().String(), slog.Default())
	go func() {
		if err := srv.Serve(ln); err != nil {
			slog.Debug("embedded server stopped", "error", err)
		}
	}()
	apiURL := "http://" + ln.Addr().String() + "/api"

	// Wait for server to be ready
	c := newClient(apiURL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		if err := c.Ping(ctx); err == nil {
			break
		}
		if ctx.Err() != nil {
			ln.Close()
			st.Close()
			return "", nil, fmt.Errorf("timeout waiting for embedded server")
		}
		time.Sleep(50 * time.Millisecond)
	}

	return apiURL, func() {
		ln.Close()
		st.Close()
	}, nil
}
