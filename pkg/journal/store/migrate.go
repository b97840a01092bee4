package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql

	"github.com/quarzen/tradebook/internal/logger"
	"github.com/quarzen/tradebook/internal/telemetry"
	"github.com/quarzen/tradebook/pkg/journal/models"
	"github.com/quarzen/tradebook/pkg/journal/store/migrations"
)

// Migrate applies pending schema migrations for the configured backend.
//
// This is the startup sequencer's step (a) and also backs the
// `tradebook migrate` command. It is idempotent: an up-to-date schema is a
// success, not an error.
//
// SQLite uses GORM auto-migration (single-node, no concurrent migrators).
// PostgreSQL uses golang-migrate with the embedded SQL migrations;
// golang-migrate takes an advisory lock so only one instance migrates at a
// time when several replicas deploy together.
func Migrate(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanDBMigrate)
	defer span.End()
	span.SetAttributes(telemetry.DBSystem(string(cfg.Type)), telemetry.DBOperation("migrate"))

	logger.Info("Running database migrations", logger.KeyDatabase, string(cfg.Type))

	err := func() error {
		switch cfg.Type {
		case DatabaseTypeSQLite:
			return migrateSQLite(cfg)
		case DatabaseTypePostgres:
			return migratePostgres(ctx, cfg)
		default:
			return fmt.Errorf("unsupported database type: %s", cfg.Type)
		}
	}()
	if err != nil {
		telemetry.RecordError(ctx, err)
	}
	return err
}

// migrateSQLite opens the database and lets GORM reconcile the schema.
func migrateSQLite(cfg *Config) error {
	s, err := New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to run database migration: %w", err)
	}

	logger.Info("Migrations completed successfully", logger.KeyDatabase, string(cfg.Type))
	return nil
}

// migratePostgres executes versioned migrations using golang-migrate.
func migratePostgres(ctx context.Context, cfg *Config) error {
	db, err := sql.Open("pgx", cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{
		MigrationsTable: "schema_migrations",
		DatabaseName:    cfg.Postgres.Database,
	})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No migrations to apply (database is up to date)")
	} else {
		logger.Info("Migrations completed successfully")
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		logger.Info("No migrations applied yet")
	} else {
		logger.Info("Current schema version",
			logger.KeyVersion, version,
			logger.KeyDirty, dirty,
		)
		if dirty {
			logger.Warn("Database schema is in dirty state - manual intervention may be required")
		}
	}

	return nil
}
