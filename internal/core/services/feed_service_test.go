package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/ports"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/services"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/testsupport"
)

type feedFixture struct {
	svc        ports.FeedService
	engagement ports.EngagementService
	posts      *testsupport.MemPostRepo
	comments   *testsupport.MemCommentRepo
	users      *testsupport.MemUserRepo
	publisher  *testsupport.MemPublisher
}

func newFeedFixture(t *testing.T) *feedFixture {
	t.Helper()
	posts := testsupport.NewMemPostRepo()
	comments := testsupport.NewMemCommentRepo()
	users := testsupport.NewMemUserRepo()
	likes := testsupport.NewMemLikeRepo()
	publisher := testsupport.NewMemPublisher()
	engagement := services.NewEngagementService(likes, posts, publisher)
	return &feedFixture{
		svc:        services.NewFeedService(posts, comments, users, engagement, publisher, 10, 100),
		engagement: engagement,
		posts:      posts,
		comments:   comments,
		users:      users,
		publisher:  publisher,
	}
}

func TestListPosts_Pagination(t *testing.T) {
	f := newFeedFixture(t)
	base := time.Now().UTC()
	for i := 0; i < 25; i++ {
		seedPost(f.posts, fmt.Sprintf("author%02d", i), base.Add(time.Duration(i)*time.Second))
	}

	// 25 posts, page 2 à 10 par page.
	result, err := f.svc.ListPosts(context.Background(), 2, 10, "")
	require.NoError(t, err)

	assert.Len(t, result.Items, 10)
	assert.Equal(t, 25, result.Total)
	assert.Equal(t, 3, result.Pages)
	assert.True(t, result.HasNext)
	assert.True(t, result.HasPrev)

	// Ordre anté-chronologique : la page 2 commence au 11e plus récent.
	assert.Equal(t, "author14", result.Items[0].Post.UserHandle)
	assert.Equal(t, "author05", result.Items[9].Post.UserHandle)
}

func TestListPosts_BeyondLastPage(t *testing.T) {
	f := newFeedFixture(t)
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		seedPost(f.posts, fmt.Sprintf("author%d", i), base.Add(time.Duration(i)*time.Second))
	}

	result, err := f.svc.ListPosts(context.Background(), 3, 10, "")
	require.NoError(t, err)

	assert.Empty(t, result.Items)
	assert.Equal(t, 5, result.Total)
	assert.False(t, result.HasNext)
	assert.True(t, result.HasPrev)
}

func TestListPosts_DefaultsOnInvalidArgs(t *testing.T) {
	f := newFeedFixture(t)
	base := time.Now().UTC()
	for i := 0; i < 15; i++ {
		seedPost(f.posts, fmt.Sprintf("author%d", i), base.Add(time.Duration(i)*time.Second))
	}

	result, err := f.svc.ListPosts(context.Background(), 0, -5, "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.PerPage)
	assert.Len(t, result.Items, 10)
}

func TestListPosts_AnnotatesViewerLikes(t *testing.T) {
	f := newFeedFixture(t)
	base := time.Now().UTC()
	p1 := seedPost(f.posts, "alice", base)
	seedPost(f.posts, "bob", base.Add(time.Second))

	_, _, err := f.engagement.ToggleLike(context.Background(), p1.ID, "viewer")
	require.NoError(t, err)

	result, err := f.svc.ListPosts(context.Background(), 1, 10, "viewer")
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	byID := map[string]bool{}
	for _, v := range result.Items {
		byID[v.Post.ID] = v.HasLiked
	}
	assert.True(t, byID[p1.ID])

	// Sans viewer, aucune annotation.
	anon, err := f.svc.ListPosts(context.Background(), 1, 10, "")
	require.NoError(t, err)
	for _, v := range anon.Items {
		assert.False(t, v.HasLiked)
	}
}

func TestGetPost(t *testing.T) {
	f := newFeedFixture(t)
	post := seedPost(f.posts, "alice", time.Now().UTC())

	view, err := f.svc.GetPost(context.Background(), post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, post.ID, view.Post.ID)

	_, err = f.svc.GetPost(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestCreatePost_RefreshesAuthorFromIdentity(t *testing.T) {
	f := newFeedFixture(t)
	user := seedUser(f.users, "alice", "Alice Real")
	user.UserImage = "avatar.png"
	require.NoError(t, f.users.Update(context.Background(), user))

	post, err := f.svc.CreatePost(context.Background(), ports.CreatePostCmd{
		UserName:    "Stale Name",
		UserHandle:  "alice",
		UserImage:   "old.png",
		Description: "hello",
	})
	require.NoError(t, err)

	// Le nom et l'avatar viennent du Identity Store, pas du payload.
	assert.Equal(t, "Alice Real", post.UserName)
	assert.Equal(t, "avatar.png", post.UserImage)
	assert.Equal(t, "hello", post.Description)
}

func TestCreatePost_HandleCollisionResolvesOldest(t *testing.T) {
	f := newFeedFixture(t)
	base := time.Now().UTC()

	// Deux comptes partagent la partie locale "alice" : le plus ancien gagne.
	older := &domain.User{ID: "u-old", Email: "alice@old.example.com", Name: "Old Alice", CreatedAt: base}
	newer := &domain.User{ID: "u-new", Email: "alice@new.example.com", Name: "New Alice", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, f.users.Save(context.Background(), older))
	require.NoError(t, f.users.Save(context.Background(), newer))

	post, err := f.svc.CreatePost(context.Background(), ports.CreatePostCmd{
		UserName:   "Payload Name",
		UserHandle: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "Old Alice", post.UserName)
}

func TestCreatePost_UnknownHandleKeepsPayload(t *testing.T) {
	f := newFeedFixture(t)

	post, err := f.svc.CreatePost(context.Background(), ports.CreatePostCmd{
		UserName:   "Ghost Writer",
		UserHandle: "ghost",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ghost Writer", post.UserName)
}

func TestCreatePost_MissingAuthor(t *testing.T) {
	f := newFeedFixture(t)

	_, err := f.svc.CreatePost(context.Background(), ports.CreatePostCmd{UserHandle: "alice"})
	assert.ErrorIs(t, err, domain.ErrMissingUserID)
}

func TestDeletePost(t *testing.T) {
	f := newFeedFixture(t)
	post := seedPost(f.posts, "alice", time.Now().UTC())

	require.NoError(t, f.svc.DeletePost(context.Background(), post.ID))

	_, err := f.svc.GetPost(context.Background(), post.ID, "")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	assert.ErrorIs(t, f.svc.DeletePost(context.Background(), post.ID), domain.ErrPostNotFound)
}

func TestListComments(t *testing.T) {
	f := newFeedFixture(t)
	seedUser(f.users, "bob", "Bob")
	post := seedPost(f.posts, "alice", time.Now().UTC())

	for i := 0; i < 3; i++ {
		_, err := f.svc.CreateComment(context.Background(), post.ID, "bob", fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
	}

	result, err := f.svc.ListComments(context.Background(), post.ID, 1, 2)
	require.NoError(t, err)

	assert.Len(t, result.Items, 2)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Pages)
	assert.True(t, result.HasNext)
	assert.False(t, result.HasPrev)

	// Auteur résolu sur chaque commentaire.
	assert.Equal(t, "Bob", result.Items[0].Author.Name)
	assert.Equal(t, "bob", result.Items[0].Author.Handle)
}

func TestListComments_UnknownPost(t *testing.T) {
	f := newFeedFixture(t)

	_, err := f.svc.ListComments(context.Background(), "ghost", 1, 10)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestCreateComment(t *testing.T) {
	f := newFeedFixture(t)
	post := seedPost(f.posts, "alice", time.Now().UTC())

	comment, err := f.svc.CreateComment(context.Background(), post.ID, "bob", "nice")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)

	assert.Equal(t, []string{comment.ID}, f.publisher.Comments)
}

func TestCreateComment_Validation(t *testing.T) {
	f := newFeedFixture(t)
	post := seedPost(f.posts, "alice", time.Now().UTC())

	_, err := f.svc.CreateComment(context.Background(), post.ID, "bob", "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyContent)

	_, err = f.svc.CreateComment(context.Background(), post.ID, "", "hello")
	assert.ErrorIs(t, err, domain.ErrMissingUserID)

	_, err = f.svc.CreateComment(context.Background(), "ghost", "bob", "hello")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestDeleteComment_CrossPostGuard(t *testing.T) {
	f := newFeedFixture(t)
	p1 := seedPost(f.posts, "alice", time.Now().UTC())
	p2 := seedPost(f.posts, "bob", time.Now().UTC())

	comment, err := f.svc.CreateComment(context.Background(), p1.ID, "bob", "hello")
	require.NoError(t, err)

	// Le commentaire appartient à p1 : le supprimer via p2 est refusé.
	err = f.svc.DeleteComment(context.Background(), p2.ID, comment.ID)
	assert.ErrorIs(t, err, domain.ErrCommentPostMismatch)

	require.NoError(t, f.svc.DeleteComment(context.Background(), p1.ID, comment.ID))

	err = f.svc.DeleteComment(context.Background(), p1.ID, comment.ID)
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}
