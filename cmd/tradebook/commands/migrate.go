package commands

import (
	"context"
	"fmt"

	"github.com/quarzen/tradebook/internal/logger"
	"github.com/quarzen/tradebook/pkg/config"
	"github.com/quarzen/tradebook/pkg/journal/store"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run database migrations for the journal database.

This command applies pending database migrations to the configured journal
database (SQLite or PostgreSQL). It is the same step 'tradebook start' runs
before serving, exposed standalone so upgrades can be applied ahead of a
restart.

Examples:
  # Run migrations with default config
  tradebook migrate

  # Run migrations with custom config
  tradebook migrate --config /etc/tradebook/config.yaml`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	logger.Info("Running database migrations", "type", cfg.Database.Type)

	ctx := context.Background()
	if err := store.Migrate(ctx, &cfg.Database); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Verify the migration worked by checking if we can query users
	journalStore, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("migration verification failed: %w", err)
	}
	defer func() { _ = journalStore.Close() }()

	if _, err := journalStore.ListUsers(ctx); err != nil {
		return fmt.Errorf("migration verification failed: %w", err)
	}

	fmt.Printf("Migrations completed successfully (database type: %s)\n", cfg.Database.Type)
	return nil
}
