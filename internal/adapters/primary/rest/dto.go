package rest

import (
	"time"

	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
)

// DTOs de la surface JSON historique : clés camelCase pour les entités,
// snake_case pour l'enveloppe de pagination.

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	UserImage string `json:"userImage"`
	Mobile    string `json:"mobile"`
	Bio       string `json:"bio"`
	Dob       string `json:"dob"`
	CreatedAt string `json:"createdAt"`
}

type userSummaryResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Image      string `json:"image"`
	IsVerified bool   `json:"isVerified"`
}

type friendEdgeResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	FriendID  string               `json:"friendId"`
	Status    string               `json:"status"`
	CreatedAt string               `json:"createdAt"`
	User      *userSummaryResponse `json:"user,omitempty"`
}

type postResponse struct {
	ID          string `json:"id"`
	UserName    string `json:"userName"`
	UserHandle  string `json:"userHandle"`
	UserImage   string `json:"userImage"`
	IsVerified  bool   `json:"isVerified"`
	PostImage   string `json:"postImage"`
	Description string `json:"description"`
	Hashtags    string `json:"hashtags"`
	Likes       int    `json:"likes"`
	HasLiked    bool   `json:"hasLiked"`
	CreatedAt   string `json:"createdAt"`
}

type commentResponse struct {
	ID         string               `json:"id"`
	Content    string               `json:"content"`
	UserID     string               `json:"userId"`
	PostID     string               `json:"postId"`
	UserName   string               `json:"userName"`
	UserHandle string               `json:"userHandle"`
	UserImage  string               `json:"userImage"`
	UserParams *userSummaryResponse `json:"userParams"`
	CreatedAt  string               `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		UserImage: u.UserImage,
		Mobile:    u.Mobile,
		Bio:       u.Bio,
		Dob:       u.Dob,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toSummaryResponse(s domain.UserSummary) userSummaryResponse {
	return userSummaryResponse{
		ID:         s.ID,
		Name:       s.Name,
		Username:   s.Handle,
		Image:      s.Image,
		IsVerified: s.IsVerified,
	}
}

func toSummaryResponses(in []domain.UserSummary) []userSummaryResponse {
	out := make([]userSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, toSummaryResponse(s))
	}
	return out
}

func toEdgeResponse(e *domain.FriendEdge) friendEdgeResponse {
	return friendEdgeResponse{
		ID:        e.ID,
		UserID:    e.RequesterID,
		FriendID:  e.TargetID,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

func toPendingResponse(r *domain.PendingRequest) friendEdgeResponse {
	resp := toEdgeResponse(r.Edge)
	sum := toSummaryResponse(r.Requester)
	resp.User = &sum
	return resp
}

func toPostResponse(v *domain.PostView) postResponse {
	p := v.Post
	return postResponse{
		ID:          p.ID,
		UserName:    p.UserName,
		UserHandle:  p.UserHandle,
		UserImage:   p.UserImage,
		IsVerified:  p.IsVerified,
		PostImage:   p.PostImage,
		Description: p.Description,
		Hashtags:    p.Hashtags,
		Likes:       p.Likes,
		HasLiked:    v.HasLiked,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func toCommentResponse(v *domain.CommentView) commentResponse {
	var params *userSummaryResponse
	if v.Author.ID != "" {
		sum := toSummaryResponse(v.Author)
		params = &sum
	}
	return commentResponse{
		ID:         v.Comment.ID,
		Content:    v.Comment.Content,
		UserID:     v.Comment.UserID,
		PostID:     v.Comment.PostID,
		UserName:   v.Author.Name,
		UserHandle: v.Author.Handle,
		UserImage:  v.Author.Image,
		UserParams: params,
		CreatedAt:  v.Comment.CreatedAt.Format(time.RFC3339),
	}
}
