package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/ports"
)

// DTO tampon entre la base et le domaine.
type sqlUser struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	UserImage    string    `db:"user_image"`
	Mobile       string    `db:"mobile"`
	Bio          string    `db:"bio"`
	Dob          string    `db:"dob"`
	CreatedAt    time.Time `db:"created_at"`
}

const userColumns = `id, email, password_hash, name, user_image, mobile, bio, dob, created_at`

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) ports.UserRepository {
	return &UserRepo{db: db}
}

func (r *UserRepo) Save(ctx context.Context, user *domain.User) error {
	q := `
		INSERT INTO users (` + userColumns + `)
		VALUES (@id, @email, @password_hash, @name, @user_image, @mobile, @bio, @dob, @created_at)
	`
	args := pgx.NamedArgs{
		"id":            user.ID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"name":          user.Name,
		"user_image":    user.UserImage,
		"mobile":        user.Mobile,
		"bio":           user.Bio,
		"dob":           user.Dob,
		"created_at":    user.CreatedAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("db: save user: %w", err)
	}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	q := `
		UPDATE users
		SET name = @name, user_image = @user_image, mobile = @mobile, bio = @bio, dob = @dob
		WHERE id = @id
	`
	args := pgx.NamedArgs{
		"id":         user.ID,
		"name":       user.Name,
		"user_image": user.UserImage,
		"mobile":     user.Mobile,
		"bio":        user.Bio,
		"dob":        user.Dob,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("db: update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, q, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, q, email))
}

func (r *UserRepo) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	// Le handle est la partie locale de l'email. Deux emails peuvent partager
	// la même partie locale : le plus ancien compte gagne, déterministe.
	q := `SELECT ` + userColumns + ` FROM users WHERE split_part(email, '@', 1) = $1 ORDER BY created_at, id LIMIT 1`
	return r.scanUser(r.db.QueryRow(ctx, q, handle))
}

func (r *UserRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db: user exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepo) GetSummaries(ctx context.Context, ids []string) (map[string]domain.UserSummary, error) {
	out := make(map[string]domain.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	q := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("db: get summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		out[u.ID] = u.Summary()
	}
	return out, rows.Err()
}

func (r *UserRepo) ListExcluding(ctx context.Context, userID string, excludeIDs []string, limit int) ([]domain.UserSummary, error) {
	if excludeIDs == nil {
		excludeIDs = []string{}
	}
	// Ordre par ID : stable et déterministe pour un jeu de données fixe.
	q := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id <> $1 AND NOT (id = ANY($2))
		ORDER BY id
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, q, userID, excludeIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("db: list excluding: %w", err)
	}
	defer rows.Close()

	var out []domain.UserSummary
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u.Summary())
	}
	return out, rows.Err()
}

// --- Helpers ---

func (r *UserRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u sqlUser
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.UserImage, &u.Mobile, &u.Bio, &u.Dob, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db: scan user: %w", err)
	}
	return toDomainUser(&u), nil
}

func scanUserRow(rows pgx.Rows) (*domain.User, error) {
	var u sqlUser
	err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.UserImage, &u.Mobile, &u.Bio, &u.Dob, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db: scan user row: %w", err)
	}
	return toDomainUser(&u), nil
}

func toDomainUser(u *sqlUser) *domain.User {
	return &domain.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		UserImage:    u.UserImage,
		Mobile:       u.Mobile,
		Bio:          u.Bio,
		Dob:          u.Dob,
		CreatedAt:    u.CreatedAt,
	}
}
