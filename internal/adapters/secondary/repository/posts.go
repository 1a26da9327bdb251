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

const postColumns = `id, user_name, user_handle, user_image, is_verified, post_image, description, hashtags, likes, created_at`

type PostRepo struct {
	db *pgxpool.Pool
}

func NewPostRepo(db *pgxpool.Pool) ports.PostRepository {
	return &PostRepo{db: db}
}

func (r *PostRepo) Save(ctx context.Context, post *domain.Post) error {
	q := `
		INSERT INTO posts (` + postColumns + `)
		VALUES (@id, @user_name, @user_handle, @user_image, @is_verified, @post_image, @description, @hashtags, @likes, @created_at)
	`
	args := pgx.NamedArgs{
		"id":          post.ID,
		"user_name":   post.UserName,
		"user_handle": post.UserHandle,
		"user_image":  post.UserImage,
		"is_verified": post.IsVerified,
		"post_image":  post.PostImage,
		"description": post.Description,
		"hashtags":    post.Hashtags,
		"likes":       post.Likes,
		"created_at":  post.CreatedAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("db: save post: %w", err)
	}
	return nil
}

func (r *PostRepo) FindByID(ctx context.Context, postID string) (*domain.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, q, postID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("db: find post: %w", err)
	}
	return post, nil
}

func (r *PostRepo) Delete(ctx context.Context, postID string) error {
	// Commentaires et likes suivent par ON DELETE CASCADE.
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("db: delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepo) Exists(ctx context.Context, postID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db: post exists: %w", err)
	}
	return exists, nil
}

// List pagine en anté-chronologique strict ; l'ID départage les égalités de
// date pour garder un ordre déterministe.
func (r *PostRepo) List(ctx context.Context, offset, limit int) ([]*domain.Post, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db: count posts: %w", err)
	}

	q := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("db: list posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db: scan post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, total, rows.Err()
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID, &p.UserName, &p.UserHandle, &p.UserImage, &p.IsVerified,
		&p.PostImage, &p.Description, &p.Hashtags, &p.Likes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
