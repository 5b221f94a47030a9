package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobtracker/pkg/storage/postgres/migrations"
)

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	data, err := fs.ReadFile(migrations.FS, names[0])
	require.NoError(t, err)
	sqlText := string(data)
	assert.Contains(t, sqlText, "-- +goose Up")
	assert.Contains(t, sqlText, "ON DELETE CASCADE")
	assert.Contains(t, sqlText, "ON DELETE SET NULL")
}

func TestMigrate_PropagatesError(t *testing.T) {
	old := gooseUp
	t.Cleanup(func() { gooseUp = old })

	boom := errors.New("boom")
	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		gotDir = dir
		return boom
	}
	err := Migrate(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, ".", gotDir)
}
