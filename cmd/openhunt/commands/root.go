package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/openhunt/openhunt/pkg/config"
	"github.com/openhunt/openhunt/pkg/store"
)

var (
	// Global flags; empty values fall back to the environment.
	dbURL   string
	restURL string
	restKey string
	devMode bool
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "openhunt",
	Short: "openhunt - product directory backend",
	Long: `openhunt is a product-directory backend: makers submit products,
moderators approve or reject them, and visitors browse, search, and rank
them by popularity.

Storage works against either a directly-connected PostgreSQL database or
a REST-fronted database service, selected once at startup. The direct
connection takes priority when both are configured.`,
	Version: "1.4.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "PostgreSQL connection URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&restURL, "rest-url", "", "REST backend base URL (overrides REST_URL)")
	rootCmd.PersistentFlags().StringVar(&restKey, "rest-key", "", "REST backend service key (overrides REST_SERVICE_KEY)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Widen approved-status filters to include pending rows")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
}

// loadConfig reads the environment once and applies flag overrides.
func loadConfig() config.Config {
	cfg := config.FromEnv()
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if restURL != "" {
		cfg.RestURL = restURL
	}
	if restKey != "" {
		cfg.RestServiceKey = restKey
	}
	if devMode {
		cfg.DevMode = true
	}
	return cfg
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore builds the facade from the effective configuration.
func openStore(ctx context.Context) (*store.Store, config.Config, *slog.Logger, error) {
	cfg := loadConfig()
	log := newLogger()

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		return nil, cfg, log, err
	}
	return st, cfg, log, nil
}
