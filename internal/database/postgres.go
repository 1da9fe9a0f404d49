package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresConfig describes how to reach the relational store.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds a lib/pq keyword/value connection string.
func (c PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Name, sslMode)
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}

func OpenPostgres(cfg PostgresConfig) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS goals (
	id          BIGSERIAL PRIMARY KEY,
	user_id     TEXT        NOT NULL DEFAULT '',
	title       TEXT        NOT NULL DEFAULT '',
	description TEXT        NOT NULL DEFAULT '',
	progress    INTEGER     NOT NULL DEFAULT 0,
	target_date DATE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS goals_user_id_progress_idx ON goals (user_id, progress);

CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT    NOT NULL DEFAULT '',
	email         TEXT    NOT NULL DEFAULT '',
	gender        TEXT    NOT NULL DEFAULT '',
	image         TEXT,
	image_name    TEXT,
	password      TEXT    NOT NULL DEFAULT '',
	mobile        TEXT    NOT NULL DEFAULT '',
	followers     INTEGER NOT NULL DEFAULT 0 CHECK (followers >= 0),
	date_of_birth DATE,
	description   TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS users_username_idx ON users (username);
`

// Migrate creates the goals and users tables when they are missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
