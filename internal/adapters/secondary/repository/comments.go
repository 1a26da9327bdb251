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

const commentColumns = `id, content, user_id, post_id, created_at`

type CommentRepo struct {
	db *pgxpool.Pool
}

func NewCommentRepo(db *pgxpool.Pool) ports.CommentRepository {
	return &CommentRepo{db: db}
}

func (r *CommentRepo) Save(ctx context.Context, comment *domain.Comment) error {
	q := `
		INSERT INTO comments (` + commentColumns + `)
		VALUES (@id, @content, @user_id, @post_id, @created_at)
	`
	args := pgx.NamedArgs{
		"id":         comment.ID,
		"content":    comment.Content,
		"user_id":    comment.UserID,
		"post_id":    comment.PostID,
		"created_at": comment.CreatedAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("db: save comment: %w", err)
	}
	return nil
}

func (r *CommentRepo) FindByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	q := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRow(ctx, q, commentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("db: find comment: %w", err)
	}
	return comment, nil
}

func (r *CommentRepo) Delete(ctx context.Context, commentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("db: delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepo) ListByPost(ctx context.Context, postID string, offset, limit int) ([]*domain.Comment, int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("db: count comments: %w", err)
	}

	q := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, q, postID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db: list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db: scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	if err := row.Scan(&c.ID, &c.Content, &c.UserID, &c.PostID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
