package services

import (
	"context"
	"log/slog"

	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/ports"
)

type engagementService struct {
	likes     ports.LikeRepository
	posts     ports.PostRepository
	publisher ports.EventPublisher
}

func NewEngagementService(likes ports.LikeRepository, posts ports.PostRepository, pub ports.EventPublisher) ports.EngagementService {
	return &engagementService{likes: likes, posts: posts, publisher: pub}
}

func (s *engagementService) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	if userID == "" {
		return false, 0, domain.ErrMissingUserID
	}

	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return false, 0, err
	}
	if !ok {
		return false, 0, domain.ErrPostNotFound
	}

	// Le repo sérialise le read-modify-write (marque + compteur) dans une
	// transaction, avec l'unicité (user_id, post_id) comme garde de course.
	liked, likes, err := s.likes.Toggle(ctx, postID, userID)
	if err != nil {
		return false, 0, err
	}

	if liked {
		if err := s.publisher.PublishPostLiked(ctx, postID, userID); err != nil {
			slog.Warn("post liked event not published", "post_id", postID, "error", err)
		}
	}
	return liked, likes, nil
}

func (s *engagementService) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.likes.Exists(ctx, postID, userID)
}

func (s *engagementService) LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	if userID == "" || len(postIDs) == 0 {
		return map[string]bool{}, nil
	}
	return s.likes.LikedPostIDs(ctx, userID, postIDs)
}
