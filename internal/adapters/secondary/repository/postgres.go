package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Code Postgres "unique_violation".
const pgUniqueViolation = "23505"

// EnsureSchema crée les tables et contraintes (idempotent).
// Les index d'unicité sont les gardes de concurrence des ledgers :
//   - likes(user_id, post_id) sérialise le toggle par clé
//   - la paire non ordonnée pending bloque les demandes dupliquées en course
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name          TEXT NOT NULL DEFAULT '',
			user_image    TEXT NOT NULL DEFAULT '',
			mobile        TEXT NOT NULL DEFAULT '',
			bio           TEXT NOT NULL DEFAULT '',
			dob           TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS friends (
			id           UUID PRIMARY KEY,
			requester_id UUID NOT NULL REFERENCES users(id),
			target_id    UUID NOT NULL REFERENCES users(id),
			status       TEXT NOT NULL DEFAULT 'pending',
			created_at   TIMESTAMPTZ NOT NULL,
			UNIQUE (requester_id, target_id)
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS friends_pending_pair_uniq
			ON friends (LEAST(requester_id, target_id), GREATEST(requester_id, target_id))
			WHERE status = 'pending'`,
		`CREATE TABLE IF NOT EXISTS posts (
			id          UUID PRIMARY KEY,
			user_name   TEXT NOT NULL,
			user_handle TEXT NOT NULL,
			user_image  TEXT NOT NULL DEFAULT '',
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			post_image  TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			hashtags    TEXT NOT NULL DEFAULT '',
			likes       INTEGER NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS posts_created_at_idx ON posts (created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id         UUID PRIMARY KEY,
			content    TEXT NOT NULL,
			user_id    UUID NOT NULL,
			post_id    UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS comments_post_created_idx ON comments (post_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS likes (
			id         UUID PRIMARY KEY,
			user_id    UUID NOT NULL,
			post_id    UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE (user_id, post_id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// isUniqueViolation détecte une violation de contrainte d'unicité.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
