package postgres

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"cosmiccraft/internal/errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every pending embedded migration. Services sharing one database
// may all run it; golang-migrate serialises them with an advisory lock.
func Migrate(ctx context.Context, sqlDB *sql.DB, logger *slog.Logger) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "failed to open embedded migrations")
	}

	// A dedicated connection keeps m.Close from closing the shared pool.
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		closeMigrationDrivers(logger, src, nil)

		return errors.Wrap(err, "failed to acquire migration connection")
	}

	driver, err := migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	if err != nil {
		_ = conn.Close()
		closeMigrationDrivers(logger, src, nil)

		return errors.Wrap(err, "failed to create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		// The postgres driver owns conn and closes it.
		closeMigrationDrivers(logger, src, driver)

		return errors.Wrap(err, "failed to create migrator")
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("Failed to close migrator", slog.Any("source_error", srcErr), slog.Any("db_error", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to apply migrations")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errors.Wrap(err, "failed to read migration version")
	}
	logger.Info("Database schema is up to date", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))

	return nil
}

// closeMigrationDrivers releases drivers that never reached a migrator. db may be nil.
func closeMigrationDrivers(logger *slog.Logger, src source.Driver, db database.Driver) {
	if err := src.Close(); err != nil {
		logger.Warn("Failed to close migration source", slog.Any("error", err))
	}
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("Failed to close migration driver", slog.Any("error", err))
	}
}
