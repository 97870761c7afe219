package db

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"brandhub/db/migrations"
)

// migrator is the part of *migrate.Migrate used to bring the schema to a
// version.
type migrator interface {
	Version() (version uint, dirty bool, err error)
	Migrate(version uint) error
}

// Migrate brings the campaigns schema at addr to migrations.Version using
// the embedded SQL files.
func Migrate(addr string, logger *slog.Logger) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer src.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", src, addr)
	if err != nil {
		return fmt.Errorf("connect migrator: %w", err)
	}
	defer mg.Close()

	return migrateTo(mg, migrations.Version, logger)
}

func migrateTo(mg migrator, target uint, logger *slog.Logger) error {
	current, dirty, err := mg.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		current = 0
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty, fix it by hand and force the version", current)
	}
	// Migrate would step down to target and drop newer tables.
	if current > target {
		return fmt.Errorf("schema version %d is newer than %d known to this build", current, target)
	}
	if current == target {
		logger.Info("schema up to date", slog.Uint64("version", uint64(current)))
		return nil
	}

	logger.Info("migrating schema", slog.Uint64("from", uint64(current)), slog.Uint64("to", uint64(target)))
	if err = mg.Migrate(target); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate to %d: %w", target, err)
	}
	return nil
}
