package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Post porte les champs auteur dénormalisés (le front historique les stocke
// avec le post) et le compteur likes, qui doit rester égal au nombre de
// LikeMark référençant le post.
type Post struct {
	ID          string
	UserName    string
	UserHandle  string
	UserImage   string
	IsVerified  bool
	PostImage   string
	Description string
	Hashtags    string
	Likes       int
	CreatedAt   time.Time
}

// PostView est un post annoté pour un viewer donné.
type PostView struct {
	Post     *Post
	HasLiked bool
}

// Comment est immuable après création, hors suppression.
type Comment struct {
	ID        string
	Content   string
	UserID    string
	PostID    string
	CreatedAt time.Time
}

// CommentView dénormalise le résumé de l'auteur pour l'affichage du thread.
type CommentView struct {
	Comment *Comment
	Author  UserSummary
}

// LikeMark : unique par (UserID, PostID). Sa présence est la seule source
// de vérité de "cet utilisateur a liké ce post".
type LikeMark struct {
	ID        string
	UserID    string
	PostID    string
	CreatedAt time.Time
}

func NewPost(userName, userHandle string) (*Post, error) {
	if strings.TrimSpace(userName) == "" || strings.TrimSpace(userHandle) == "" {
		return nil, ErrMissingUserID
	}
	return &Post{
		ID:         uuid.NewString(),
		UserName:   strings.TrimSpace(userName),
		UserHandle: strings.TrimSpace(userHandle),
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func NewComment(postID, userID, content string) (*Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return &Comment{
		ID:        uuid.NewString(),
		Content:   content,
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func NewLikeMark(postID, userID string) *LikeMark {
	return &LikeMark{
		ID:        uuid.NewString(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}
}
