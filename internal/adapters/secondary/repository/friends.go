package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/ports"
)

const friendColumns = `id, requester_id, target_id, status, created_at`

type FriendRepo struct {
	db *pgxpool.Pool
}

func NewFriendRepo(db *pgxpool.Pool) ports.FriendRepository {
	return &FriendRepo{db: db}
}

func (r *FriendRepo) Insert(ctx context.Context, edge *domain.FriendEdge) error {
	q := `
		INSERT INTO friends (` + friendColumns + `)
		VALUES (@id, @requester_id, @target_id, @status, @created_at)
	`
	args := pgx.NamedArgs{
		"id":           edge.ID,
		"requester_id": edge.RequesterID,
		"target_id":    edge.TargetID,
		"status":       string(edge.Status),
		"created_at":   edge.CreatedAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		// Course entre deux demandes concurrentes sur la même paire :
		// l'index partiel sur la paire non ordonnée la transforme en Conflict.
		if isUniqueViolation(err) {
			return domain.ErrRequestExists
		}
		return fmt.Errorf("db: insert friend edge: %w", err)
	}
	return nil
}

func (r *FriendRepo) GetByID(ctx context.Context, id string) (*domain.FriendEdge, error) {
	q := `SELECT ` + friendColumns + ` FROM friends WHERE id = $1`

	edge, err := scanEdge(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("db: get friend edge: %w", err)
	}
	return edge, nil
}

func (r *FriendRepo) FindBetween(ctx context.Context, a, b string) (*domain.FriendEdge, error) {
	q := `
		SELECT ` + friendColumns + `
		FROM friends
		WHERE (requester_id = $1 AND target_id = $2)
		   OR (requester_id = $2 AND target_id = $1)
		ORDER BY status, created_at
		LIMIT 1
	`

	edge, err := scanEdge(r.db.QueryRow(ctx, q, a, b))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db: find edge between: %w", err)
	}
	return edge, nil
}

// Accept bascule l'edge en accepted et insère l'edge réciproque.
// Une seule transaction : un échec après la bascule laisse l'état intact,
// jamais d'edge accepted fantôme sans réciproque.
func (r *FriendRepo) Accept(ctx context.Context, edge, reciprocal *domain.FriendEdge) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("db: begin accept: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE friends SET status = $1 WHERE id = $2 AND status = $3`,
		string(domain.FriendStatusAccepted), edge.ID, string(domain.FriendStatusPending),
	)
	if err != nil {
		return fmt.Errorf("db: flip edge status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// L'edge a disparu ou a déjà été accepté entre-temps.
		return domain.ErrAlreadyAccepted
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO friends (`+friendColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		reciprocal.ID, reciprocal.RequesterID, reciprocal.TargetID, string(reciprocal.Status), reciprocal.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyAccepted
		}
		return fmt.Errorf("db: insert reciprocal edge: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *FriendRepo) ListPendingFor(ctx context.Context, userID string) ([]*domain.FriendEdge, error) {
	q := `
		SELECT ` + friendColumns + `
		FROM friends
		WHERE target_id = $1 AND status = $2
		ORDER BY created_at
	`
	return r.queryEdges(ctx, q, userID, string(domain.FriendStatusPending))
}

func (r *FriendRepo) ListAcceptedFor(ctx context.Context, userID string) ([]*domain.FriendEdge, error) {
	q := `
		SELECT ` + friendColumns + `
		FROM friends
		WHERE (requester_id = $1 OR target_id = $1) AND status = $2
		ORDER BY created_at, id
	`
	return r.queryEdges(ctx, q, userID, string(domain.FriendStatusAccepted))
}

func (r *FriendRepo) ConnectedUserIDs(ctx context.Context, userID string) ([]string, error) {
	q := `
		SELECT CASE WHEN requester_id = $1 THEN target_id ELSE requester_id END
		FROM friends
		WHERE requester_id = $1 OR target_id = $1
	`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("db: connected user ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db: scan connected id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// --- Helpers ---

func (r *FriendRepo) queryEdges(ctx context.Context, q string, args ...any) ([]*domain.FriendEdge, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db: query friend edges: %w", err)
	}
	defer rows.Close()

	var edges []*domain.FriendEdge
	for rows.Next() {
		edge, err := scanEdge(rows)
		if err != nil {
			return nil, fmt.Errorf("db: scan friend edge: %w", err)
		}
		edges = append(edges, edge)
	}
	return edges, rows.Err()
}

func scanEdge(row pgx.Row) (*domain.FriendEdge, error) {
	var e domain.FriendEdge
	var status string
	if err := row.Scan(&e.ID, &e.RequesterID, &e.TargetID, &status, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Status = domain.FriendStatus(status)
	return &e, nil
}
