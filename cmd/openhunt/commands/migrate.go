package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openhunt/openhunt/cmd/openhunt/output"
	"github.com/openhunt/openhunt/pkg/store/postgres"
)

// migrateCmd manages the relational schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long: `Manage the PostgreSQL schema. The schema is owned by the direct
relational backend only; the REST-fronted service manages its own.

Subcommands:
  up      - Apply pending migrations
  status  - Show migration status`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateUp()
	},
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateStatus()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
}

// openPostgres opens the relational backend directly; migrations have
// no meaning on the REST path.
func openPostgres(ctx context.Context) (*postgres.Store, error) {
	cfg := loadConfig()
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("migrations require DATABASE_URL or --db")
	}
	return postgres.Open(ctx, cfg.DatabaseURL, cfg.WidenApproved())
}

func runMigrateUp() error {
	ctx := context.Background()

	pg, err := openPostgres(ctx)
	if err != nil {
		output.Error("%v", err)
		return err
	}
	defer pg.Close()

	applied, err := pg.Migrate(ctx)
	if err != nil {
		output.Error("Migration failed: %v", err)
		return err
	}
	if len(applied) == 0 {
		output.Info("Schema is up to date")
		return nil
	}
	for _, version := range applied {
		output.Success("Applied %s", version)
	}
	return nil
}

func runMigrateStatus() error {
	ctx := context.Background()

	pg, err := openPostgres(ctx)
	if err != nil {
		output.Error("%v", err)
		return err
	}
	defer pg.Close()

	records, err := pg.MigrationStatus(ctx)
	if err != nil {
		output.Error("Failed to read migration status: %v", err)
		return err
	}
	pending, err := pg.PendingMigrations(ctx)
	if err != nil {
		output.Error("Failed to read pending migrations: %v", err)
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tSTATUS\tAPPLIED AT")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\tapplied\t%s\n", r.Version, r.Name, r.AppliedAt.Format("2006-01-02 15:04:05"))
	}
	for _, m := range pending {
		fmt.Fprintf(w, "%s\t%s\tpending\t-\n", m.Version, m.Name)
	}
	return w.Flush()
}
