package ports

import (
	"context"

	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
)

// UserRepository est le Identity Store vu du core : résolution d'identités
// et résumés dénormalisés.
type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByHandle résout un user par la partie locale de son email.
	GetByHandle(ctx context.Context, handle string) (*domain.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	// GetSummaries résout un lot d'IDs ; les IDs inconnus sont ignorés.
	GetSummaries(ctx context.Context, ids []string) (map[string]domain.UserSummary, error)
	// ListExcluding renvoie jusqu'à limit users hors excludeIDs et hors userID,
	// ordonnés par ID (déterministe).
	ListExcluding(ctx context.Context, userID string, excludeIDs []string, limit int) ([]domain.UserSummary, error)
}

// FriendRepository possède les edges du graphe d'amitié.
type FriendRepository interface {
	// Insert échoue avec domain.ErrRequestExists si un edge pending existe
	// déjà pour la paire non ordonnée (contrainte d'unicité, direction-agnostique).
	Insert(ctx context.Context, edge *domain.FriendEdge) error
	GetByID(ctx context.Context, id string) (*domain.FriendEdge, error)
	// FindBetween cherche un edge dans les deux directions, tout statut.
	// Renvoie (nil, nil) quand aucun edge n'existe entre a et b.
	FindBetween(ctx context.Context, a, b string) (*domain.FriendEdge, error)
	// Accept bascule l'edge en accepted et insère l'edge réciproque dans une
	// même transaction ; les deux écritures committent ensemble ou aucune.
	Accept(ctx context.Context, edge, reciprocal *domain.FriendEdge) error
	ListPendingFor(ctx context.Context, userID string) ([]*domain.FriendEdge, error)
	ListAcceptedFor(ctx context.Context, userID string) ([]*domain.FriendEdge, error)
	// ConnectedUserIDs renvoie tout user relié à userID par un edge,
	// pending ou accepted, dans les deux directions.
	ConnectedUserIDs(ctx context.Context, userID string) ([]string, error)
}

// LikeRepository possède les LikeMark et le compteur dénormalisé des posts.
type LikeRepository interface {
	// Toggle exécute le read-modify-write en une transaction par (postID, userID) :
	// delete + décrément (plancher 0) si la marque existe, sinon insert + incrément.
	// Un insert concurrent dupliqué est absorbé en "déjà liké" (no-op).
	Toggle(ctx context.Context, postID, userID string) (liked bool, likes int, err error)
	Exists(ctx context.Context, postID, userID string) (bool, error)
	LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)
}

// PostRepository est le Post Store (collaborateur).
type PostRepository interface {
	Save(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, postID string) (*domain.Post, error)
	Delete(ctx context.Context, postID string) error
	Exists(ctx context.Context, postID string) (bool, error)
	// List pagine en ordre anté-chronologique et renvoie le total.
	List(ctx context.Context, offset, limit int) ([]*domain.Post, int, error)
}

// CommentRepository est le Comment Store (collaborateur).
type CommentRepository interface {
	Save(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, commentID string) (*domain.Comment, error)
	Delete(ctx context.Context, commentID string) error
	ListByPost(ctx context.Context, postID string, offset, limit int) ([]*domain.Comment, int, error)
}

// EventPublisher publie les événements du ledger (best effort).
type EventPublisher interface {
	PublishFriendAccepted(ctx context.Context, edge *domain.FriendEdge) error
	PublishPostLiked(ctx context.Context, postID, userID string) error
	PublishCommentCreated(ctx context.Context, comment *domain.Comment) error
}

// PasswordHasher et TokenProvider sont les ports sécurité du collaborateur identité.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenProvider interface {
	Generate(user *domain.User) (string, error)
	Validate(token string) (string, error) // renvoie le user ID
}
