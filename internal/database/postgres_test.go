package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{Host: "db", Port: 5432, User: "app", Name: "goalpath"}
	assert.Equal(t, "host=db port=5432 user=app dbname=goalpath sslmode=disable", cfg.DSN())

	cfg.Password = "s3cret"
	cfg.SSLMode = "require"
	assert.Equal(t, "host=db port=5432 user=app dbname=goalpath sslmode=require password=s3cret", cfg.DSN())
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "postgres")

	t.Run("CreatesTables", func(t *testing.T) {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS goals .* CREATE TABLE IF NOT EXISTS users`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, Migrate(context.Background(), sqlxDB))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("WrapsFailure", func(t *testing.T) {
		mock.ExpectExec(`CREATE TABLE`).WillReturnError(errors.New("permission denied"))

		err := Migrate(context.Background(), sqlxDB)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "permission denied")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
