package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"weather_notification_bot/internal/infra/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

type migrateLogger struct {
	entry *logrus.Entry
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.entry.Infof(format, v...)
}

func (l migrateLogger) Verbose() bool { return false }

// RunMigrations applies the dialect's pending up migrations. Already applied
// versions are tracked in schema_migrations, so running it on every start is safe.
func RunMigrations(ctx context.Context, db *sql.DB, dialect Dialect) error {
	src, err := iofs.New(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return fmt.Errorf("failed to read migrations for %s: %w", dialect, err)
	}

	var (
		driver migratedb.Driver
		conn   *sql.Conn
	)
	switch dialect {
	case DialectPostgres:
		// A dedicated connection: closing the migrator must not close the pool.
		conn, err = db.Conn(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire migration connection: %w", err)
		}
		driver, err = migratepg.WithConnection(ctx, conn, &migratepg.Config{})
	case DialectSQLite:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		err = fmt.Errorf("unsupported dialect %q", dialect)
	}
	if err != nil {
		if conn != nil {
			_ = conn.Close()
		}
		_ = src.Close()
		return fmt.Errorf("migration init failed: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dialect), driver)
	if err != nil {
		return fmt.Errorf("migration init failed: %w", err)
	}
	m.Log = migrateLogger{entry: logger.Component("migrate").WithField("dialect", dialect)}

	upErr := m.Up()

	// The sqlite driver owns db itself and would close it; only the postgres
	// driver holds a connection of its own.
	if dialect == DialectPostgres {
		m.Close()
	} else {
		_ = src.Close()
	}

	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("migrations up failed: %w", upErr)
	}
	return nil
}
