package postgres

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeTrackingSource struct {
	source.Driver
	closed int
}

func (s *closeTrackingSource) Close() error {
	s.closed++

	return nil
}

type closeTrackingDatabase struct {
	database.Driver
	closed int
	err    error
}

func (d *closeTrackingDatabase) Close() error {
	d.closed++

	return d.err
}

func TestCloseMigrationDrivers(t *testing.T) {
	t.Run("closes source and database", func(t *testing.T) {
		src := &closeTrackingSource{}
		db := &closeTrackingDatabase{}

		closeMigrationDrivers(slog.New(slog.DiscardHandler), src, db)

		assert.Equal(t, 1, src.closed)
		assert.Equal(t, 1, db.closed)
	})

	t.Run("nil database closes only the source", func(t *testing.T) {
		src := &closeTrackingSource{}

		closeMigrationDrivers(slog.New(slog.DiscardHandler), src, nil)

		assert.Equal(t, 1, src.closed)
	})

	t.Run("close failures are logged", func(t *testing.T) {
		var buf bytes.Buffer
		db := &closeTrackingDatabase{err: errors.New("conn busy")}

		closeMigrationDrivers(slog.New(slog.NewTextHandler(&buf, nil)), &closeTrackingSource{}, db)

		assert.Contains(t, buf.String(), "Failed to close migration driver")
		assert.Contains(t, buf.String(), "conn busy")
	})
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(migrationsFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}
