package storage

import (
	"database/sql"
	"fmt"
	"time"

	"palabra/internal/config"
	"palabra/internal/repository"
	"palabra/internal/repository/postgres"
	"palabra/internal/repository/textfile"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// MigrationsURL is where golang-migrate finds the schema
const MigrationsURL = "file://migrations"

// Open returns the pool repository selected by cfg.Storage.
// The returned close function releases the database connection, if any.
func Open(cfg *config.Config, logger *zap.Logger) (repository.PoolRepository, func() error, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewPoolRepo(db), db.Close, nil

	case config.StorageFile, "":
		store := textfile.NewStore(cfg.DataDir, logger)
		if err := store.Init(); err != nil {
			return nil, nil, err
		}
		logger.Info("Using text pool files", zap.String("dir", cfg.DataDir))
		return store, func() error { return nil }, nil
	}

	return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// One user, a handful of pools
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations creates or upgrades the pool_entries schema
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(MigrationsURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case err == migrate.ErrNoChange:
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
