package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/glassview/internal/database/migrations"
)

func TestMySQLConfig_DSN(t *testing.T) {
	dsn := MySQLConfig("app", "s3cret", "db", "3306", "glassview").FormatDSN()
	assert.Contains(t, dsn, "app:s3cret@tcp(db:3306)/glassview?")
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestMigrations_Embedded(t *testing.T) {
	b, err := migrations.FS.ReadFile("00001_init.sql")
	require.NoError(t, err)
	assert.Contains(t, string(b), "-- +goose Up")
	assert.Contains(t, string(b), "FOREIGN KEY (location_id)")
	assert.Contains(t, string(b), "FOREIGN KEY (user_id) REFERENCES users (id)")
}

func TestMigrate_RunsUp(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUp
	defer func() { gooseUp = orig }()
	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Migrate(context.Background(), db))
	assert.Equal(t, ".", gotDir)
}

func TestMigrate_PropagatesError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUp
	defer func() { gooseUp = orig }()
	gooseUp = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	assert.EqualError(t, Migrate(context.Background(), db), "boom")
}
