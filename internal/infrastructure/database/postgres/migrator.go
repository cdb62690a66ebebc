package postgres

import (
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migration source

	"github.com/juristech/prazojus/internal/infrastructure/monitoring/logging"
	"github.com/juristech/prazojus/pkg/errors"
)

// newMigrate binds the migration source to the live connection pool, so
// migrations run over the same driver the application uses.
func (c *Connection) newMigrate(migrationsDir string) (*migrate.Migrate, error) {
	driver, err := migratepg.WithInstance(c.db, &migratepg.Config{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create migration driver")
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create migrate instance")
	}
	return m, nil
}

// RunMigrations applies all pending schema migrations.  A fully migrated
// database is not an error.
func (c *Connection) RunMigrations(migrationsDir string) error {
	m, err := c.newMigrate(migrationsDir)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to run migrations")
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		c.log.Warn("failed to read migration version", logging.Err(err))
		return nil
	}
	c.log.Info("database migrations up to date",
		logging.Int64("version", int64(version)),
		logging.Bool("dirty", dirty),
	)
	return nil
}

// RollbackMigrations reverts the given number of steps.  Development and
// test tooling only.
func (c *Connection) RollbackMigrations(migrationsDir string, steps int) error {
	if steps <= 0 {
		return errors.Newf(errors.ErrCodeInvalidArgument, "steps must be positive, got %d", steps)
	}
	m, err := c.newMigrate(migrationsDir)
	if err != nil {
		return err
	}
	if err := m.Steps(-steps); err != nil && err != migrate.ErrNoChange {
		return errors.Wrapf(err, errors.ErrCodeDatabaseError, "failed to roll back %d step(s)", steps)
	}
	return nil
}

// MigrationStatus reports the applied version and whether a previous
// migration left the schema dirty.
func (c *Connection) MigrationStatus(migrationsDir string) (version uint, dirty bool, err error) {
	m, err := c.newMigrate(migrationsDir)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err = m.Version()
	if err == migrate.ErrNilVersion {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to read migration version")
	}
	return version, dirty, nil
}
