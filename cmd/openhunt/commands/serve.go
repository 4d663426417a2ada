package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openhunt/openhunt/cmd/openhunt/output"
	"github.com/openhunt/openhunt/pkg/server"
)

var listenAddr string

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the product directory HTTP API against the configured backend.

Examples:
  openhunt serve --db postgres://localhost/openhunt
  openhunt serve --rest-url https://db.example.com --rest-key KEY --listen :9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "HTTP listen address (overrides LISTEN_ADDR)")
}

func runServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, cfg, log, err := openStore(ctx)
	if err != nil {
		output.Error("Failed to open store: %v", err)
		return err
	}
	defer st.Close()

	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.New(st, cfg, log).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	output.Success("Listening on %s", cfg.ListenAddr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		output.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
