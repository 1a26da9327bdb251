package ports

import (
	"context"
	"time"

	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
)

// RelationshipService est le port driving du Relationship Ledger :
// machine à états des demandes d'amitié, liste d'amis, suggestions.
type RelationshipService interface {
	SendRequest(ctx context.Context, requesterID, targetID string) (*domain.FriendEdge, error)
	AcceptRequest(ctx context.Context, accepterID, requestID string) (*domain.FriendEdge, error)
	ListPendingRequests(ctx context.Context, userID string) ([]*domain.PendingRequest, error)
	ListFriends(ctx context.Context, userID string) ([]domain.UserSummary, error)
	Suggest(ctx context.Context, userID string, limit int) ([]domain.UserSummary, error)
}

// EngagementService est le port driving du Engagement Ledger (likes).
type EngagementService interface {
	// ToggleLike renvoie le nouvel état liked et le compteur à jour.
	ToggleLike(ctx context.Context, postID, userID string) (bool, int, error)
	HasLiked(ctx context.Context, postID, userID string) (bool, error)
	// LikedPostIDs annote un lot de posts pour un viewer (une seule requête).
	LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)
}

// FeedService est le port driving du Feed/Thread Reader.
type FeedService interface {
	ListPosts(ctx context.Context, page, perPage int, viewerID string) (domain.Page[*domain.PostView], error)
	GetPost(ctx context.Context, postID, viewerID string) (*domain.PostView, error)
	CreatePost(ctx context.Context, cmd CreatePostCmd) (*domain.Post, error)
	DeletePost(ctx context.Context, postID string) error

	ListComments(ctx context.Context, postID string, page, perPage int) (domain.Page[*domain.CommentView], error)
	CreateComment(ctx context.Context, postID, userID, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) error
}

// CreatePostCmd porte les champs dénormalisés fournis par le client.
type CreatePostCmd struct {
	UserName    string
	UserHandle  string
	UserImage   string
	IsVerified  bool
	PostImage   string
	Description string
	Hashtags    string
}

// IdentityService est le collaborateur identité (hors core, surface mince).
type IdentityService interface {
	Register(ctx context.Context, cmd RegisterCmd) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error)
}

type RegisterCmd struct {
	Email    string
	Password string
	Name     string
}

type AuthResponse struct {
	User        *domain.User
	AccessToken string
	ExpiresIn   time.Duration
}
