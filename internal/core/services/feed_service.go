package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/ports"
)

const defaultCommentsPerPage = 20

type feedService struct {
	posts      ports.PostRepository
	comments   ports.CommentRepository
	users      ports.UserRepository
	engagement ports.EngagementService
	publisher  ports.EventPublisher

	defaultPerPage int
	maxPerPage     int
}

func NewFeedService(
	posts ports.PostRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	engagement ports.EngagementService,
	pub ports.EventPublisher,
	defaultPerPage, maxPerPage int,
) ports.FeedService {
	return &feedService{
		posts:          posts,
		comments:       comments,
		users:          users,
		engagement:     engagement,
		publisher:      pub,
		defaultPerPage: defaultPerPage,
		maxPerPage:     maxPerPage,
	}
}

func (s *feedService) ListPosts(ctx context.Context, page, perPage int, viewerID string) (domain.Page[*domain.PostView], error) {
	page, perPage = domain.NormalizePageArgs(page, perPage, s.defaultPerPage, s.maxPerPage)

	posts, total, err := s.posts.List(ctx, (page-1)*perPage, perPage)
	if err != nil {
		return domain.Page[*domain.PostView]{}, err
	}

	views, err := s.annotate(ctx, posts, viewerID)
	if err != nil {
		return domain.Page[*domain.PostView]{}, err
	}
	return domain.NewPage(views, page, perPage, total), nil
}

func (s *feedService) GetPost(ctx context.Context, postID, viewerID string) (*domain.PostView, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	views, err := s.annotate(ctx, []*domain.Post{post}, viewerID)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// annotate calcule hasLiked pour le viewer en un seul batch.
func (s *feedService) annotate(ctx context.Context, posts []*domain.Post, viewerID string) ([]*domain.PostView, error) {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	liked := map[string]bool{}
	if viewerID != "" {
		var err error
		liked, err = s.engagement.LikedPostIDs(ctx, viewerID, ids)
		if err != nil {
			return nil, fmt.Errorf("annotate likes: %w", err)
		}
	}

	views := make([]*domain.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, &domain.PostView{Post: p, HasLiked: liked[p.ID]})
	}
	return views, nil
}

func (s *feedService) CreatePost(ctx context.Context, cmd ports.CreatePostCmd) (*domain.Post, error) {
	post, err := domain.NewPost(cmd.UserName, cmd.UserHandle)
	if err != nil {
		return nil, err
	}
	post.UserImage = cmd.UserImage
	post.IsVerified = cmd.IsVerified
	post.PostImage = cmd.PostImage
	post.Description = cmd.Description
	post.Hashtags = strings.TrimSpace(cmd.Hashtags)

	// Rafraîchit les champs auteur depuis le Identity Store quand le handle
	// se résout, pour ne pas figer un nom/avatar périmé.
	if author, err := s.users.GetByHandle(ctx, post.UserHandle); err == nil {
		sum := author.Summary()
		post.UserName = sum.Name
		if sum.Image != "" {
			post.UserImage = sum.Image
		}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *feedService) DeletePost(ctx context.Context, postID string) error {
	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPostNotFound
	}
	// Les commentaires et likes suivent par cascade FK.
	return s.posts.Delete(ctx, postID)
}

func (s *feedService) ListComments(ctx context.Context, postID string, page, perPage int) (domain.Page[*domain.CommentView], error) {
	var empty domain.Page[*domain.CommentView]

	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return empty, err
	}
	if !ok {
		return empty, domain.ErrPostNotFound
	}

	page, perPage = domain.NormalizePageArgs(page, perPage, defaultCommentsPerPage, s.maxPerPage)

	comments, total, err := s.comments.ListByPost(ctx, postID, (page-1)*perPage, perPage)
	if err != nil {
		return empty, err
	}

	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	authors, err := s.users.GetSummaries(ctx, ids)
	if err != nil {
		return empty, fmt.Errorf("resolve comment authors: %w", err)
	}

	views := make([]*domain.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, &domain.CommentView{Comment: c, Author: authors[c.UserID]})
	}
	return domain.NewPage(views, page, perPage, total), nil
}

func (s *feedService) CreateComment(ctx context.Context, postID, userID, content string) (*domain.Comment, error) {
	comment, err := domain.NewComment(postID, userID, content)
	if err != nil {
		return nil, err
	}

	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishCommentCreated(ctx, comment); err != nil {
		slog.Warn("comment created event not published", "comment_id", comment.ID, "error", err)
	}
	return comment, nil
}

func (s *feedService) DeleteComment(ctx context.Context, postID, commentID string) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	// Garde contre la suppression cross-post via identifiants dépareillés.
	if comment.PostID != postID {
		return domain.ErrCommentPostMismatch
	}
	return s.comments.Delete(ctx, commentID)
}
