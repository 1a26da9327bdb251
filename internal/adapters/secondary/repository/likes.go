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

type LikeRepo struct {
	db *pgxpool.Pool
}

func NewLikeRepo(db *pgxpool.Pool) ports.LikeRepository {
	return &LikeRepo{db: db}
}

// Toggle exécute le read-modify-write (marque + compteur) dans une seule
// transaction. L'unicité (user_id, post_id) est la garde de concurrence :
// un insert dupliqué en course est absorbé en "déjà liké" au lieu de fuiter
// une erreur de stockage.
func (r *LikeRepo) Toggle(ctx context.Context, postID, userID string) (bool, int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("db: begin toggle: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("db: delete like mark: %w", err)
	}

	var liked bool
	var likes int

	if tag.RowsAffected() > 0 {
		// Unlike : décrément planché à 0, le compteur ne devient jamais négatif
		// même sous double-unlike concurrent.
		err = tx.QueryRow(ctx,
			`UPDATE posts SET likes = GREATEST(likes - 1, 0) WHERE id = $1 RETURNING likes`,
			postID,
		).Scan(&likes)
		liked = false
	} else {
		mark := domain.NewLikeMark(postID, userID)
		_, err = tx.Exec(ctx,
			`INSERT INTO likes (id, user_id, post_id, created_at) VALUES ($1, $2, $3, $4)`,
			mark.ID, mark.UserID, mark.PostID, mark.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				// Course : un toggle concurrent a posé la marque le premier.
				// No-op idempotent, on renvoie l'état courant.
				_ = tx.Rollback(ctx)
				likes, rerr := r.currentCount(ctx, postID)
				if rerr != nil {
					return false, 0, rerr
				}
				return true, likes, nil
			}
			return false, 0, fmt.Errorf("db: insert like mark: %w", err)
		}
		err = tx.QueryRow(ctx,
			`UPDATE posts SET likes = likes + 1 WHERE id = $1 RETURNING likes`,
			postID,
		).Scan(&likes)
		liked = true
	}

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, domain.ErrPostNotFound
		}
		return false, 0, fmt.Errorf("db: adjust like count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, fmt.Errorf("db: commit toggle: %w", err)
	}
	return liked, likes, nil
}

func (r *LikeRepo) Exists(ctx context.Context, postID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db: like exists: %w", err)
	}
	return exists, nil
}

func (r *LikeRepo) LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT post_id FROM likes WHERE user_id = $1 AND post_id = ANY($2)`,
		userID, postIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("db: liked post ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db: scan liked post id: %w", err)
		}
		out[id] = true
	}
	return out, rows.Err()
}

func (r *LikeRepo) currentCount(ctx context.Context, postID string) (int, error) {
	var likes int
	err := r.db.QueryRow(ctx, `SELECT likes FROM posts WHERE id = $1`, postID).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrPostNotFound
		}
		return 0, fmt.Errorf("db: current like count: %w", err)
	}
	return likes, nil
}
