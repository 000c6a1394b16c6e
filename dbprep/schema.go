package dbprep

import (
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// figure out the migration parameters
func getMigrateParams() (url string, path string) {
	url = os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/netwalker?sslmode=disable"
	}
	path = os.Getenv("DBPREP_PATH")
	if path == "" {
		if fi, err := os.Stat("dbprep/migrations"); err == nil && fi.IsDir() {
			// running from the repository root
			path = "dbprep/migrations"
		} else {
			path = "migrations"
		}
	}
	return
}

// newMigrate opens a migrator over the migration files and the
// database.  Callers must Close it.
func newMigrate() (*migrate.Migrate, error) {
	url, path := getMigrateParams()
	m, err := migrate.New("file://"+path, url)
	if err != nil {
		return nil, fmt.Errorf("Couldn't open migrations at %q for %q: %v", path, url, err)
	}
	return m, nil
}

// SchemaUp creates the database with the right schema.
func SchemaUp() error {
	m, err := newMigrate()
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("Table creation had errors: %v", err)
	}
	return nil
}

// SchemaDown tears down the database.
func SchemaDown() error {
	m, err := newMigrate()
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("Table deletion had errors: %v", err)
	}
	return nil
}

// SchemaVersion returns the version of the database, zero when
// no migration has been applied.
func SchemaVersion() (uint, error) {
	m, err := newMigrate()
	if err != nil {
		return 0, err
	}
	defer m.Close()
	version, _, err := m.Version()
	if err == migrate.ErrNilVersion {
		return 0, nil
	}
	return version, err
}
