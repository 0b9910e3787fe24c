package migrate

import (
	"database/sql"
	"errors"
	"io/fs"

	embedded "github.com/Nick-Wu5/ceeps"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const databaseName = "ceeps"

func UpSQLite(db *sql.DB) error {
	databaseDriver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	return up(embedded.SQLiteMigrations, "migrations/sqlite", databaseDriver)
}

func UpPostgres(db *sql.DB) error {
	databaseDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}
	return up(embedded.PostgresMigrations, "migrations/postgres", databaseDriver)
}

func up(migrations fs.FS, path string, databaseDriver database.Driver) error {
	sourceDriver, err := iofs.New(migrations, path)
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs",
		sourceDriver,
		databaseName, databaseDriver)
	if err != nil {
		return err
	}
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
