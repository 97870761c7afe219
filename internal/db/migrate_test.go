package db

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	version    uint
	dirty      bool
	versionErr error
	migrateErr error
	migrated   []uint
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.versionErr
}

func (f *fakeMigrator) Migrate(v uint) error {
	f.migrated = append(f.migrated, v)
	return f.migrateErr
}

func TestMigrateTo(t *testing.T) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("empty database", func(t *testing.T) {
		var buf bytes.Buffer
		mg := &fakeMigrator{versionErr: migrate.ErrNilVersion}
		require.NoError(t, migrateTo(mg, 2, slog.New(slog.NewTextHandler(&buf, nil))))
		assert.Equal(t, []uint{2}, mg.migrated)
		assert.Contains(t, buf.String(), "from=0 to=2")
	})
	t.Run("up to date", func(t *testing.T) {
		mg := &fakeMigrator{version: 2}
		require.NoError(t, migrateTo(mg, 2, discard))
		assert.Empty(t, mg.migrated)
	})
	t.Run("no change", func(t *testing.T) {
		mg := &fakeMigrator{version: 1, migrateErr: migrate.ErrNoChange}
		assert.NoError(t, migrateTo(mg, 2, discard))
	})
	t.Run("dirty", func(t *testing.T) {
		mg := &fakeMigrator{version: 1, dirty: true}
		assert.ErrorContains(t, migrateTo(mg, 2, discard), "dirty")
		assert.Empty(t, mg.migrated)
	})
	t.Run("newer than build", func(t *testing.T) {
		mg := &fakeMigrator{version: 3}
		assert.ErrorContains(t, migrateTo(mg, 2, discard), "newer")
		assert.Empty(t, mg.migrated)
	})
	t.Run("failures are wrapped", func(t *testing.T) {
		boom := errors.New("syntax error")
		mg := &fakeMigrator{version: 1, migrateErr: boom}
		assert.ErrorIs(t, migrateTo(mg, 2, discard), boom)

		mg = &fakeMigrator{versionErr: boom}
		assert.ErrorIs(t, migrateTo(mg, 2, discard), boom)
	})
}
