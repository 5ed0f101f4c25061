/* postgres.go
 * Contains the PostgreSQL preference backend, for deployments that already run postgres next to the backend
 */

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

const createPreferencesTable = `
CREATE TABLE IF NOT EXISTS ui_preferences (
	namespace     TEXT        NOT NULL,
	tournament_id INTEGER     NOT NULL,
	key           TEXT        NOT NULL,
	value         TEXT        NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, tournament_id, key)
)`

type PostgresStore struct {
	DB *sql.DB
}

// NewPostgresStore opens a connection pool, verifies it and makes sure the preferences table exists
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createPreferencesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create ui_preferences table: %w", err)
	}

	return &PostgresStore{DB: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key Key) (string, error) {
	var value string
	err := s.DB.QueryRowContext(ctx,
		`SELECT value FROM ui_preferences WHERE namespace = $1 AND tournament_id = $2 AND key = $3`,
		key.Namespace, key.TournamentID, key.Name,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("error fetching preference from db: %w", err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key Key, value string) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO ui_preferences (namespace, tournament_id, key, value, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (namespace, tournament_id, key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key.Namespace, key.TournamentID, key.Name, value,
	)
	if err != nil {
		return fmt.Errorf("failed to store preference: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key Key) error {
	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM ui_preferences WHERE namespace = $1 AND tournament_id = $2 AND key = $3`,
		key.Namespace, key.TournamentID, key.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close(ctx context.Context) error {
	return s.DB.Close()
}
