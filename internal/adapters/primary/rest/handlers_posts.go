package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/ports"
)

// pageParams lit page / per_page de la query ; les valeurs manquantes ou
// invalides retombent sur les défauts du service.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	return page, perPage
}

// requestViewer privilégie le user_id explicite de la query, sinon le
// bearer token décodé par le middleware.
func requestViewer(c *gin.Context) string {
	if id := c.Query("user_id"); id != "" {
		return id
	}
	return viewerID(c)
}

// HandleListPosts traite GET /api/posts?page=&per_page=&user_id=
func (h *Handlers) HandleListPosts(c *gin.Context) {
	page, perPage := pageParams(c)

	result, err := h.feed.ListPosts(c.Request.Context(), page, perPage, requestViewer(c))
	if err != nil {
		respondError(c, err)
		return
	}

	posts := make([]postResponse, 0, len(result.Items))
	for _, v := range result.Items {
		posts = append(posts, toPostResponse(v))
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":    posts,
		"has_next": result.HasNext,
		"has_prev": result.HasPrev,
		"total":    result.Total,
		"pages":    result.Pages,
	})
}

// HandleGetPost traite GET /api/posts/:id
func (h *Handlers) HandleGetPost(c *gin.Context) {
	view, err := h.feed.GetPost(c.Request.Context(), c.Param("id"), requestViewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(view))
}

type createPostBody struct {
	UserName    string `json:"userName" binding:"required"`
	UserHandle  string `json:"userHandle" binding:"required"`
	UserImage   string `json:"userImage"`
	IsVerified  bool   `json:"isVerified"`
	PostImage   string `json:"postImage"`
	Description string `json:"description"`
	Hashtags    string `json:"hashtags"`
}

// HandleCreatePost traite POST /api/posts
func (h *Handlers) HandleCreatePost(c *gin.Context) {
	var body createPostBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userName and userHandle are required"})
		return
	}

	post, err := h.feed.CreatePost(c.Request.Context(), ports.CreatePostCmd{
		UserName:    body.UserName,
		UserHandle:  body.UserHandle,
		UserImage:   body.UserImage,
		IsVerified:  body.IsVerified,
		PostImage:   body.PostImage,
		Description: body.Description,
		Hashtags:    body.Hashtags,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPostResponse(&domain.PostView{Post: post}))
}

// HandleDeletePost traite DELETE /api/posts/:id
func (h *Handlers) HandleDeletePost(c *gin.Context) {
	if err := h.feed.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

type toggleLikeBody struct {
	UserID string `json:"userId" binding:"required"`
}

// HandleToggleLike traite POST /api/posts/:id/like
func (h *Handlers) HandleToggleLike(c *gin.Context) {
	var body toggleLikeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	liked, likes, err := h.engagement.ToggleLike(c.Request.Context(), c.Param("id"), body.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "likes": likes, "message": message})
}

// HandleListComments traite GET /api/posts/:id/comments
func (h *Handlers) HandleListComments(c *gin.Context) {
	page, perPage := pageParams(c)

	result, err := h.feed.ListComments(c.Request.Context(), c.Param("id"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	comments := make([]commentResponse, 0, len(result.Items))
	for _, v := range result.Items {
		comments = append(comments, toCommentResponse(v))
	}
	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"has_next": result.HasNext,
		"has_prev": result.HasPrev,
		"total":    result.Total,
		"pages":    result.Pages,
		"page":     result.Page,
	})
}

type createCommentBody struct {
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

// HandleCreateComment traite POST /api/posts/:id/comments
func (h *Handlers) HandleCreateComment(c *gin.Context) {
	var body createCommentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No input data provided"})
		return
	}

	comment, err := h.feed.CreateComment(c.Request.Context(), c.Param("id"), body.UserID, body.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":        comment.ID,
		"content":   comment.Content,
		"userId":    comment.UserID,
		"postId":    comment.PostID,
		"createdAt": comment.CreatedAt.Format(time.RFC3339),
	})
}

// HandleDeleteComment traite DELETE /api/posts/:id/comments/:commentId
func (h *Handlers) HandleDeleteComment(c *gin.Context) {
	if err := h.feed.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("commentId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
